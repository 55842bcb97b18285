// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/chain/chaintest"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/state"
)

var testActor = codec.CreateAddress(1, [32]byte{7})

func newTestTx(t *testing.T, parser *chaintest.Parser, actions ...chain.Action) *chain.Transaction {
	base := &chain.Base{Timestamp: 10_000, ChainID: parser.Rules().GetChainID()}
	tx, err := chain.NewTx(base, actions).Sign(&chaintest.TestAuthFactory{ActorAddress: testActor}, parser)
	require.NoError(t, err)
	return tx
}

func TestTransactionSignAndParse(t *testing.T) {
	require := require.New(t)
	parser := chaintest.NewParser(chaintest.NewDefaultRules())

	action := &chaintest.TestAction{
		Key:   chaintest.NewTestKey("a"),
		Value: []byte("value"),
		Requires: []chain.AccountRequirement{
			{Address: testActor, State: chain.Active},
			{Address: codec.CreateAddress(2, [32]byte{8}), State: chain.Uninitialized},
		},
	}
	tx := newTestTx(t, parser, action)
	require.NotEmpty(tx.Bytes())
	require.Equal(len(tx.Bytes()), tx.Size())
	require.Equal(int64(10_000), tx.Expiry())
	require.Equal(testActor, tx.Auth.Actor())

	parsed, err := chain.ParseTx(tx.Bytes(), parser)
	require.NoError(err)
	require.Equal(tx.ID(), parsed.ID())
	require.Equal(action, parsed.Actions[0])
	require.Equal(action.Requires, parsed.Actions[0].Accounts(testActor))

	digest, err := parsed.Digest()
	require.NoError(err)
	require.Equal(tx.Bytes()[:len(digest)], digest)

	// Trailing bytes are rejected
	_, err = chain.ParseTx(append(tx.Bytes(), 0), parser)
	require.ErrorIs(err, chain.ErrInvalidObject)
}

func TestTransactionNoActions(t *testing.T) {
	require := require.New(t)
	parser := chaintest.NewParser(chaintest.NewDefaultRules())

	base := &chain.Base{Timestamp: 10_000, ChainID: parser.Rules().GetChainID()}
	_, err := chain.NewTx(base, nil).Sign(&chaintest.TestAuthFactory{ActorAddress: testActor}, parser)
	require.ErrorIs(err, chain.ErrNoActions)
}

func TestTransactionStateKeys(t *testing.T) {
	require := require.New(t)
	parser := chaintest.NewParser(chaintest.NewDefaultRules())

	a := chaintest.NewTestKey("a")
	b := chaintest.NewTestKey("b")
	tx := newTestTx(t, parser,
		&chaintest.TestAction{Key: a, Value: []byte{1}},
		&chaintest.TestAction{Key: b, Value: []byte{2}},
		&chaintest.TestAction{Key: a, Value: []byte{3}},
	)
	stateKeys, err := tx.StateKeys()
	require.NoError(err)
	require.Equal(state.Keys{string(a): state.All, string(b): state.All}, stateKeys)
}

func TestTransactionPreExecute(t *testing.T) {
	require := require.New(t)
	rules := chaintest.NewDefaultRules()
	rules.MaxActionsPerTx = 1
	parser := chaintest.NewParser(rules)

	key := chaintest.NewTestKey("a")
	tx := newTestTx(t, parser,
		&chaintest.TestAction{Key: key},
		&chaintest.TestAction{Key: key},
	)
	require.ErrorIs(tx.PreExecute(rules, 9_000), chain.ErrTooManyActions)
	require.ErrorIs(tx.PreExecute(rules, 11_000), chain.ErrTimestampTooLate)
}
