// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/vm"
)

//go:generate go run go.uber.org/mock/mockgen -package=rpc -destination=mock_vm.go . VM

type VM interface {
	ChainID() ids.ID
	NetworkID() uint32
	Genesis() *genesis.Genesis
	Parser() chain.Parser
	Tracer() trace.Tracer
	Logger() logging.Logger

	SubmitTx(ctx context.Context, tx *chain.Transaction) (*chain.Result, error)
	GetTxStatus(txID ids.ID) (*vm.TxStatus, bool)
	GetBalance(ctx context.Context, addr codec.Address) (uint64, error)
	GetAccount(ctx context.Context, addr codec.Address) (*storage.Account, bool, error)
	GetCounter(ctx context.Context, addr codec.Address) (uint8, bool, error)
	MinimumBalance(space int) (uint64, error)
}
