// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workload

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/vm"
)

var _ TxGenerator = (*CounterTxGenerator)(nil)

// CounterTxGenerator drives a single counter record. The first transaction
// initializes the record and every later one overwrites and bumps it, so each
// transaction is unique and its resulting count is known in advance.
type CounterTxGenerator struct {
	factory chain.AuthFactory
	record  codec.Address

	l    sync.Mutex
	step int
}

func NewCounterTxGenerator(factory chain.AuthFactory) *CounterTxGenerator {
	return &CounterTxGenerator{
		factory: factory,
		record:  codec.CreateAddress(consts.RecordAddressID, ids.GenerateTestID()),
	}
}

func (g *CounterTxGenerator) Record() codec.Address {
	return g.record
}

func (g *CounterTxGenerator) GenerateTx(ctx context.Context, uri string) (*chain.Transaction, TxAssertion, error) {
	g.l.Lock()
	step := g.step
	g.step++
	g.l.Unlock()

	var (
		txActions []chain.Action
		expected  uint8
	)
	if step == 0 {
		txActions = []chain.Action{&actions.Initialize{Counter: g.record}}
	} else {
		value := uint8(step % int(consts.MaxUint8))
		txActions = []chain.Action{
			&actions.Set{Counter: g.record, Value: value},
			&actions.Increment{Counter: g.record},
			&actions.Decrement{Counter: g.record},
			&actions.Increment{Counter: g.record},
		}
		expected = value + 1
	}

	client := rpc.NewJSONRPCClient(uri)
	tx, err := client.GenerateTransaction(ctx, txActions, g.factory)
	if err != nil {
		return nil, nil, err
	}
	return tx, func(ctx context.Context, require *require.Assertions, uri string) {
		confirmCount(ctx, require, uri, tx.ID(), g.record, expected)
	}, nil
}

func confirmCount(
	ctx context.Context,
	require *require.Assertions,
	uri string,
	txID ids.ID,
	record codec.Address,
	expected uint8,
) {
	client := rpc.NewJSONRPCClient(uri)
	_, result, err := client.Tx(ctx, txID)
	require.NoError(err)
	require.True(result.Success, "tx %s failed: %s", txID, result.Error)
	require.NotEmpty(result.Outputs)

	output, err := vm.OutputParser.UnmarshalBytes(result.Outputs[len(result.Outputs)-1])
	require.NoError(err)
	counterResult, ok := output.(*actions.CounterResult)
	require.True(ok)
	require.Equal(expected, counterResult.Count)

	addr, err := client.Address(ctx, record)
	require.NoError(err)
	count, exists, err := client.Counter(ctx, addr)
	require.NoError(err)
	require.True(exists)
	require.Equal(expected, count)
}
