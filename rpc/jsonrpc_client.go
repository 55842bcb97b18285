// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/requester"
	"github.com/ava-labs/countervm/utils"
	"github.com/ava-labs/countervm/vm"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester

	networkID uint32
	chainID   ids.ID
	g         *genesis.Genesis
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	req := requester.New(uri, Name)
	return &JSONRPCClient{requester: req}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		nil,
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) Network(ctx context.Context) (uint32, ids.ID, error) {
	if cli.chainID != ids.Empty {
		return cli.networkID, cli.chainID, nil
	}

	resp := new(NetworkReply)
	err := cli.requester.SendRequest(
		ctx,
		"network",
		nil,
		resp,
	)
	if err != nil {
		return 0, ids.Empty, err
	}
	cli.networkID = resp.NetworkID
	cli.chainID = resp.ChainID
	return resp.NetworkID, resp.ChainID, nil
}

func (cli *JSONRPCClient) Genesis(ctx context.Context) (*genesis.Genesis, error) {
	if cli.g != nil {
		return cli.g, nil
	}

	resp := new(GenesisReply)
	err := cli.requester.SendRequest(
		ctx,
		"genesis",
		nil,
		resp,
	)
	if err != nil {
		return nil, err
	}
	cli.g = resp.Genesis
	return resp.Genesis, nil
}

// Parser returns a parser for the transactions of the chain [cli] is
// connected to.
func (cli *JSONRPCClient) Parser(ctx context.Context) (chain.Parser, error) {
	g, err := cli.Genesis(ctx)
	if err != nil {
		return nil, err
	}
	_, chainID, err := cli.Network(ctx)
	if err != nil {
		return nil, err
	}
	return vm.NewParser(g.Rules(chainID)), nil
}

// Address returns the bech32 encoding of [addr] for the chain [cli] is
// connected to.
func (cli *JSONRPCClient) Address(ctx context.Context, addr codec.Address) (string, error) {
	g, err := cli.Genesis(ctx)
	if err != nil {
		return "", err
	}
	return codec.AddressBech32(g.HRP, addr)
}

func (cli *JSONRPCClient) SubmitTx(ctx context.Context, d []byte) (ids.ID, *chain.Result, error) {
	resp := new(SubmitTxReply)
	err := cli.requester.SendRequest(
		ctx,
		"submitTx",
		&SubmitTxArgs{Tx: d},
		resp,
	)
	return resp.TxID, resp.Result, err
}

func (cli *JSONRPCClient) Tx(ctx context.Context, txID ids.ID) (int64, *chain.Result, error) {
	resp := new(TxReply)
	err := cli.requester.SendRequest(
		ctx,
		"tx",
		&TxArgs{TxID: txID},
		resp,
	)
	return resp.Timestamp, resp.Result, err
}

func (cli *JSONRPCClient) Counter(ctx context.Context, addr string) (uint8, bool, error) {
	resp := new(CounterReply)
	err := cli.requester.SendRequest(
		ctx,
		"counter",
		&AddressArgs{Address: addr},
		resp,
	)
	return resp.Count, resp.Exists, err
}

func (cli *JSONRPCClient) Account(ctx context.Context, addr string) (*AccountReply, error) {
	resp := new(AccountReply)
	err := cli.requester.SendRequest(
		ctx,
		"account",
		&AddressArgs{Address: addr},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Balance(ctx context.Context, addr string) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"balance",
		&AddressArgs{Address: addr},
		resp,
	)
	return resp.Amount, err
}

func (cli *JSONRPCClient) Rent(ctx context.Context, size int) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"rent",
		&RentArgs{Size: size},
		resp,
	)
	return resp.Amount, err
}

// GenerateTransaction signs a transaction carrying [actions] that expires at
// the end of the validity window.
func (cli *JSONRPCClient) GenerateTransaction(
	ctx context.Context,
	actions []chain.Action,
	factory chain.AuthFactory,
) (*chain.Transaction, error) {
	g, err := cli.Genesis(ctx)
	if err != nil {
		return nil, err
	}
	parser, err := cli.Parser(ctx)
	if err != nil {
		return nil, err
	}
	base := &chain.Base{
		Timestamp: utils.UnixRMilli(-1, g.ValidityWindow),
		ChainID:   cli.chainID,
	}
	return chain.NewTx(base, actions).Sign(factory, parser)
}

// SubmitActions signs [actions] with [factory] and submits them in a single
// transaction.
func (cli *JSONRPCClient) SubmitActions(
	ctx context.Context,
	actions []chain.Action,
	factory chain.AuthFactory,
) (ids.ID, *chain.Result, error) {
	tx, err := cli.GenerateTransaction(ctx, actions, factory)
	if err != nil {
		return ids.Empty, nil, err
	}
	return cli.SubmitTx(ctx, tx.Bytes())
}

// WaitForBalance polls until [addr] holds at least [min].
func (cli *JSONRPCClient) WaitForBalance(
	ctx context.Context,
	addr string,
	minBalance uint64,
) error {
	for {
		balance, err := cli.Balance(ctx, addr)
		if err != nil {
			return err
		}
		if balance >= minBalance {
			return nil
		}
		utils.Outf("{{yellow}}waiting for %s balance: %s{{/}}\n", utils.FormatBalance(minBalance), addr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitSleep):
		}
	}
}
