// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/pubsub"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/vm"
)

const testFunds = 100_000_000

type testNode struct {
	vm      *vm.VM
	factory *auth.ED25519Factory
	pubsub  *pubsub.Server
	server  *httptest.Server
	client  *JSONRPCClient
}

func newTestNode(t *testing.T) *testNode {
	require := require.New(t)

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	factory := auth.NewED25519Factory(priv)
	g := genesis.Default()
	g.CustomAllocation = []*genesis.CustomAllocation{
		{Address: codec.MustAddressBech32(consts.HRP, factory.Address()), Balance: testFunds},
	}
	genesisBytes, err := json.Marshal(g)
	require.NoError(err)

	v, _, err := vm.New(context.Background(), logging.NoLog{}, trace.Noop, memdb.New(), genesisBytes, vm.NewDefaultConfig())
	require.NoError(err)

	handler, err := NewJSONRPCHandler(Name, NewJSONRPCServer(v))
	require.NoError(err)
	ws, pubsubServer := NewWebSocketServer(v, 16)
	v.AddListener(ws)

	router := mux.NewRouter()
	router.Handle(JSONRPCEndpoint, handler)
	router.Handle(WebSocketEndpoint, pubsubServer)
	server := httptest.NewServer(router)
	t.Cleanup(func() {
		pubsubServer.Close()
		server.Close()
	})
	return &testNode{
		vm:      v,
		factory: factory,
		pubsub:  pubsubServer,
		server:  server,
		client:  NewJSONRPCClient(server.URL),
	}
}

func TestClientNetwork(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	node := newTestNode(t)

	ok, err := node.client.Ping(ctx)
	require.NoError(err)
	require.True(ok)

	networkID, chainID, err := node.client.Network(ctx)
	require.NoError(err)
	require.Equal(node.vm.NetworkID(), networkID)
	require.Equal(node.vm.ChainID(), chainID)

	g, err := node.client.Genesis(ctx)
	require.NoError(err)
	require.Equal(consts.HRP, g.HRP)
	require.Len(g.CustomAllocation, 1)

	addr, err := node.client.Address(ctx, node.factory.Address())
	require.NoError(err)
	balance, err := node.client.Balance(ctx, addr)
	require.NoError(err)
	require.Equal(uint64(testFunds), balance)
	require.NoError(node.client.WaitForBalance(ctx, addr, testFunds))

	rent, err := node.client.Rent(ctx, storage.CounterSpace)
	require.NoError(err)
	require.Equal(uint64(953_520), rent)
}

func TestClientCounter(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	node := newTestNode(t)

	record := codec.CreateAddress(consts.RecordAddressID, ids.GenerateTestID())
	recordAddr, err := node.client.Address(ctx, record)
	require.NoError(err)

	_, exists, err := node.client.Counter(ctx, recordAddr)
	require.NoError(err)
	require.False(exists)

	txID, result, err := node.client.SubmitActions(ctx, []chain.Action{
		&actions.Initialize{Counter: record},
		&actions.Set{Counter: record, Value: 254},
		&actions.Increment{Counter: record},
	}, node.factory)
	require.NoError(err)
	require.True(result.Success)
	require.Len(result.Outputs, 3)

	count, exists, err := node.client.Counter(ctx, recordAddr)
	require.NoError(err)
	require.True(exists)
	require.Equal(uint8(255), count)

	ts, status, err := node.client.Tx(ctx, txID)
	require.NoError(err)
	require.Positive(ts)
	require.True(status.Success)

	// overflow reverts the whole transaction
	_, result, err = node.client.SubmitActions(ctx, []chain.Action{
		&actions.Decrement{Counter: record},
		&actions.Increment{Counter: record},
		&actions.Increment{Counter: record},
	}, node.factory)
	require.NoError(err)
	require.False(result.Success)
	require.Contains(string(result.Error), actions.ErrArithmeticOverflow.Error())
	count, _, err = node.client.Counter(ctx, recordAddr)
	require.NoError(err)
	require.Equal(uint8(255), count)

	acct, err := node.client.Account(ctx, recordAddr)
	require.NoError(err)
	require.True(acct.Exists)
	require.Equal(consts.ProgramID, acct.Owner)
	require.Equal(storage.CounterSpace, acct.Size)

	_, result, err = node.client.SubmitActions(ctx, []chain.Action{
		&actions.Close{Counter: record},
	}, node.factory)
	require.NoError(err)
	require.True(result.Success)
	_, exists, err = node.client.Counter(ctx, recordAddr)
	require.NoError(err)
	require.False(exists)

	// replaying an executed transaction is rejected
	tx, err := node.client.GenerateTransaction(ctx, []chain.Action{
		&actions.Initialize{Counter: record},
	}, node.factory)
	require.NoError(err)
	_, _, err = node.client.SubmitTx(ctx, tx.Bytes())
	require.NoError(err)
	_, _, err = node.client.SubmitTx(ctx, tx.Bytes())
	require.ErrorContains(err, chain.ErrDuplicateTx.Error())
}

func TestWebSocketStream(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	node := newTestNode(t)

	ws, err := NewWebSocketClient(node.server.URL)
	require.NoError(err)
	defer ws.Close()

	record := codec.CreateAddress(consts.RecordAddressID, ids.GenerateTestID())
	// wait until the subscription is registered so the result is not missed
	require.Eventually(func() bool {
		return node.pubsub.Connections().Len() == 1
	}, time.Second, 10*time.Millisecond)

	txID, _, err := node.client.SubmitActions(ctx, []chain.Action{
		&actions.Initialize{Counter: record},
	}, node.factory)
	require.NoError(err)

	msg, err := ws.Listen()
	require.NoError(err)
	require.Equal(txID, msg.TxID)
	require.True(msg.Success)
	require.Len(msg.Outputs, 1)
	output, err := vm.OutputParser.UnmarshalBytes(msg.Outputs[0])
	require.NoError(err)
	require.Equal(&actions.CounterResult{Count: 0}, output)

	// submit over the stream
	tx, err := node.client.GenerateTransaction(ctx, []chain.Action{
		&actions.Set{Counter: record, Value: 9},
	}, node.factory)
	require.NoError(err)
	require.NoError(ws.SubmitTx(tx))
	msg, err = ws.Listen()
	require.NoError(err)
	require.Equal(tx.ID(), msg.TxID)
	require.True(msg.Success)

	// resubmitting is rejected and only the sender is told
	require.NoError(ws.SubmitTx(tx))
	msg, err = ws.Listen()
	require.NoError(err)
	require.Equal(tx.ID(), msg.TxID)
	require.True(msg.Rejected)
	require.False(msg.Success)
	require.Contains(msg.Error, chain.ErrDuplicateTx.Error())
}
