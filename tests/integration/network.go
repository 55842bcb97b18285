// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package integration

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/pubsub"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/server"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/tests/workload"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/vm"
)

var _ workload.TestNetwork = (*Network)(nil)

const (
	shutdownTimeout = 5 * time.Second
	streamBacklog   = 1024
)

type instance struct {
	vm     *vm.VM
	db     *pebble.Database
	server server.Server
	pubsub *pubsub.Server
	done   chan error
	uri    string
}

// newInstance starts a node backed by a pebble database under [dataDir] and
// serving its apis on a random local port.
func newInstance(log logging.Logger, dataDir string, genesisBytes []byte) (*instance, error) {
	db, _, err := storage.New(pebble.NewDefaultConfig(), dataDir, "db")
	if err != nil {
		return nil, err
	}
	v, _, err := vm.New(context.Background(), log, trace.Noop, db, genesisBytes, vm.NewDefaultConfig())
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		_ = v.Close()
		_ = db.Close()
		return nil, err
	}
	srv := server.New(log, listener, server.NewDefaultHTTPConfig(), []string{"*"}, []string{"*"}, shutdownTimeout)
	handler, err := rpc.NewJSONRPCHandler(rpc.Name, rpc.NewJSONRPCServer(v))
	if err != nil {
		return nil, err
	}
	if err := srv.AddRoute(handler, rpc.Name, ""); err != nil {
		return nil, err
	}
	ws, pubsubServer := rpc.NewWebSocketServer(v, streamBacklog)
	v.AddListener(ws)
	if err := srv.AddRoute(pubsubServer, rpc.Name, "/ws"); err != nil {
		return nil, err
	}

	i := &instance{
		vm:     v,
		db:     db,
		server: srv,
		pubsub: pubsubServer,
		done:   make(chan error, 1),
		uri:    fmt.Sprintf("http://%s", listener.Addr()),
	}
	go func() {
		err := srv.Dispatch()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		i.done <- err
	}()
	return i, nil
}

func (i *instance) close() error {
	i.pubsub.Close()
	return errors.Join(
		i.server.Shutdown(),
		<-i.done,
		i.vm.Close(),
		i.db.Close(),
	)
}

type Network struct {
	config    workload.TestNetworkConfiguration
	instances []*instance
}

func (n *Network) SubmitTxs(ctx context.Context, txs []*chain.Transaction) ([]*chain.Result, []error) {
	return n.instances[0].vm.Submit(ctx, txs)
}

func (n *Network) GenerateTx(ctx context.Context, actions []chain.Action, factory chain.AuthFactory) (*chain.Transaction, error) {
	c := rpc.NewJSONRPCClient(n.instances[0].uri)
	return c.GenerateTransaction(ctx, actions, factory)
}

func (n *Network) URIs() []string {
	uris := make([]string, 0, len(n.instances))
	for _, i := range n.instances {
		uris = append(uris, i.uri)
	}
	return uris
}

func (n *Network) Configuration() workload.TestNetworkConfiguration {
	return n.config
}

// Close stops every node of the network.
func (n *Network) Close() error {
	errs := make([]error, 0, len(n.instances))
	for _, i := range n.instances {
		errs = append(errs, i.close())
	}
	return errors.Join(errs...)
}
