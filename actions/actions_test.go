// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/chain/chaintest"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
)

const (
	testDeposit = 953_520
	testFunds   = 10 * testDeposit
)

var (
	testPayer   = codec.CreateAddress(consts.ED25519ID, ids.ID{1})
	testCounter = codec.CreateAddress(consts.RecordAddressID, ids.ID{2})
	testRules   = chaintest.NewDefaultRules()
)

// newCounterState returns a store holding a funded payer and, if [count] is
// non-nil, an initialized record.
func newCounterState(t *testing.T, count *uint8) state.Mutable {
	require := require.New(t)
	ctx := context.Background()

	store := chaintest.NewInMemoryStore()
	require.NoError(storage.SetBalance(ctx, store, testPayer, testFunds))
	if count != nil {
		_, err := storage.CreateCounter(ctx, store, storage.RentFromRules(testRules), testPayer, testCounter)
		require.NoError(err)
		require.NoError(storage.SetCounter(ctx, store, testCounter, *count))
	}
	return store
}

func countOf(v uint8) *uint8 {
	return &v
}

func assertCount(expected uint8) func(context.Context, *testing.T, state.Mutable) {
	return func(ctx context.Context, t *testing.T, store state.Mutable) {
		count, err := storage.GetCounter(ctx, store, testCounter)
		require.NoError(t, err)
		require.Equal(t, expected, count)
	}
}

func assertNoCounter(ctx context.Context, t *testing.T, store state.Mutable) {
	_, exists, err := storage.GetAccount(ctx, store, testCounter)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestInitializeAction(t *testing.T) {
	tests := []chaintest.ActionTest{
		{
			Name:            "InitializesToZero",
			Action:          &Initialize{Counter: testCounter},
			Rules:           testRules,
			State:           newCounterState(t, nil),
			Validator:       storage.AccountValidator{},
			Actor:           testPayer,
			ExpectedOutputs: &CounterResult{Count: 0},
			Assertion: func(ctx context.Context, t *testing.T, store state.Mutable) {
				assertCount(0)(ctx, t, store)
				bal, err := storage.GetBalance(ctx, store, testPayer)
				require.NoError(t, err)
				require.Equal(t, uint64(testFunds-testDeposit), bal)
			},
		},
		{
			Name:        "AlreadyInUse",
			Action:      &Initialize{Counter: testCounter},
			Rules:       testRules,
			State:       newCounterState(t, countOf(7)),
			Validator:   storage.AccountValidator{},
			Actor:       testPayer,
			ExpectedErr: storage.ErrAccountAlreadyInUse,
			Assertion:   assertCount(7),
		},
		{
			Name:        "PayerCannotFundDeposit",
			Action:      &Initialize{Counter: testCounter},
			Rules:       testRules,
			State:       chaintest.NewInMemoryStore(),
			Validator:   storage.AccountValidator{},
			Actor:       testPayer,
			ExpectedErr: storage.ErrInsufficientFunds,
			Assertion:   assertNoCounter,
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestIncrementAction(t *testing.T) {
	tests := []chaintest.ActionTest{
		{
			Name:            "FromZero",
			Action:          &Increment{Counter: testCounter},
			Rules:           testRules,
			State:           newCounterState(t, countOf(0)),
			Validator:       storage.AccountValidator{},
			ExpectedOutputs: &CounterResult{Count: 1},
			Assertion:       assertCount(1),
		},
		{
			Name:            "ToMax",
			Action:          &Increment{Counter: testCounter},
			Rules:           testRules,
			State:           newCounterState(t, countOf(254)),
			Validator:       storage.AccountValidator{},
			ExpectedOutputs: &CounterResult{Count: 255},
			Assertion:       assertCount(255),
		},
		{
			Name:        "Overflow",
			Action:      &Increment{Counter: testCounter},
			Rules:       testRules,
			State:       newCounterState(t, countOf(255)),
			Validator:   storage.AccountValidator{},
			ExpectedErr: ErrArithmeticOverflow,
			Assertion:   assertCount(255),
		},
		{
			Name:        "MissingRecord",
			Action:      &Increment{Counter: testCounter},
			Rules:       testRules,
			State:       newCounterState(t, nil),
			Validator:   storage.AccountValidator{},
			ExpectedErr: storage.ErrAccountNotFound,
			Assertion:   assertNoCounter,
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestDecrementAction(t *testing.T) {
	tests := []chaintest.ActionTest{
		{
			Name:            "FromMax",
			Action:          &Decrement{Counter: testCounter},
			Rules:           testRules,
			State:           newCounterState(t, countOf(255)),
			Validator:       storage.AccountValidator{},
			ExpectedOutputs: &CounterResult{Count: 254},
			Assertion:       assertCount(254),
		},
		{
			Name:            "ToZero",
			Action:          &Decrement{Counter: testCounter},
			Rules:           testRules,
			State:           newCounterState(t, countOf(1)),
			Validator:       storage.AccountValidator{},
			ExpectedOutputs: &CounterResult{Count: 0},
			Assertion:       assertCount(0),
		},
		{
			Name:        "Underflow",
			Action:      &Decrement{Counter: testCounter},
			Rules:       testRules,
			State:       newCounterState(t, countOf(0)),
			Validator:   storage.AccountValidator{},
			ExpectedErr: ErrArithmeticUnderflow,
			Assertion:   assertCount(0),
		},
		{
			Name:        "MissingRecord",
			Action:      &Decrement{Counter: testCounter},
			Rules:       testRules,
			State:       newCounterState(t, nil),
			Validator:   storage.AccountValidator{},
			ExpectedErr: storage.ErrAccountNotFound,
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestSetAction(t *testing.T) {
	ctx := context.Background()
	for v := 0; v <= int(consts.MaxUint8); v++ {
		value := uint8(v)
		test := chaintest.ActionTest{
			Name:            "Value",
			Action:          &Set{Counter: testCounter, Value: value},
			Rules:           testRules,
			State:           newCounterState(t, countOf(17)),
			Validator:       storage.AccountValidator{},
			ExpectedOutputs: &CounterResult{Count: value},
			Assertion:       assertCount(value),
		}
		test.Run(ctx, t)
	}

	missing := chaintest.ActionTest{
		Name:        "MissingRecord",
		Action:      &Set{Counter: testCounter, Value: 1},
		Rules:       testRules,
		State:       newCounterState(t, nil),
		Validator:   storage.AccountValidator{},
		ExpectedErr: storage.ErrAccountNotFound,
	}
	missing.Run(ctx, t)
}

func TestCloseAction(t *testing.T) {
	tests := []chaintest.ActionTest{
		{
			Name:            "RefundsDeposit",
			Action:          &Close{Counter: testCounter},
			Rules:           testRules,
			State:           newCounterState(t, countOf(9)),
			Validator:       storage.AccountValidator{},
			Actor:           testPayer,
			ExpectedOutputs: &CloseResult{Refund: testDeposit},
			Assertion: func(ctx context.Context, t *testing.T, store state.Mutable) {
				assertNoCounter(ctx, t, store)
				bal, err := storage.GetBalance(ctx, store, testPayer)
				require.NoError(t, err)
				require.Equal(t, uint64(testFunds), bal)
			},
		},
		{
			Name:        "MissingRecord",
			Action:      &Close{Counter: testCounter},
			Rules:       testRules,
			State:       newCounterState(t, nil),
			Validator:   storage.AccountValidator{},
			Actor:       testPayer,
			ExpectedErr: storage.ErrAccountNotFound,
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestIncrementThenDecrementRestores(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	for _, start := range []uint8{0, 1, 100, 254} {
		store := newCounterState(t, countOf(start))
		_, err := (&Increment{Counter: testCounter}).Execute(ctx, testRules, store, 0, testPayer, ids.Empty)
		require.NoError(err)
		_, err = (&Decrement{Counter: testCounter}).Execute(ctx, testRules, store, 0, testPayer, ids.Empty)
		require.NoError(err)
		count, err := storage.GetCounter(ctx, store, testCounter)
		require.NoError(err)
		require.Equal(start, count)
	}
}

// TestCounterScenario runs initialize, three increments, set(200) and 201
// decrements against a single record. The last decrement must underflow.
func TestCounterScenario(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	store := newCounterState(t, nil)
	validator := storage.AccountValidator{}

	execute := func(action chain.Action) (chain.Object, error) {
		for _, req := range action.Accounts(testPayer) {
			if err := validator.ValidateAccount(ctx, store, req); err != nil {
				return nil, err
			}
		}
		return action.Execute(ctx, testRules, store, 0, testPayer, ids.Empty)
	}

	out, err := execute(&Initialize{Counter: testCounter})
	require.NoError(err)
	require.Equal(&CounterResult{Count: 0}, out)

	for i := uint8(1); i <= 3; i++ {
		out, err = execute(&Increment{Counter: testCounter})
		require.NoError(err)
		require.Equal(&CounterResult{Count: i}, out)
	}

	out, err = execute(&Set{Counter: testCounter, Value: 200})
	require.NoError(err)
	require.Equal(&CounterResult{Count: 200}, out)

	for i := 1; i <= 200; i++ {
		out, err = execute(&Decrement{Counter: testCounter})
		require.NoError(err)
		require.Equal(&CounterResult{Count: uint8(200 - i)}, out)
	}
	_, err = execute(&Decrement{Counter: testCounter})
	require.ErrorIs(err, ErrArithmeticUnderflow)
	assertCount(0)(ctx, t, store)

	// Closing rejects further operations on the record
	out, err = execute(&Close{Counter: testCounter})
	require.NoError(err)
	require.Equal(&CloseResult{Refund: testDeposit}, out)
	for _, action := range []chain.Action{
		&Increment{Counter: testCounter},
		&Decrement{Counter: testCounter},
		&Set{Counter: testCounter, Value: 5},
	} {
		_, err = execute(action)
		require.ErrorIs(err, storage.ErrAccountNotFound)
	}

	// The record can be created again
	out, err = execute(&Initialize{Counter: testCounter})
	require.NoError(err)
	require.Equal(&CounterResult{Count: 0}, out)
}

func TestActionMarshal(t *testing.T) {
	require := require.New(t)
	registry := codec.NewTypeParser[chain.Action]()
	require.NoError(registry.Register(&Initialize{}, UnmarshalInitialize))
	require.NoError(registry.Register(&Increment{}, UnmarshalIncrement))
	require.NoError(registry.Register(&Decrement{}, UnmarshalDecrement))
	require.NoError(registry.Register(&Set{}, UnmarshalSet))
	require.NoError(registry.Register(&Close{}, UnmarshalClose))

	for _, action := range []chain.Action{
		&Initialize{Counter: testCounter},
		&Increment{Counter: testCounter},
		&Decrement{Counter: testCounter},
		&Set{Counter: testCounter, Value: 200},
		&Close{Counter: testCounter},
	} {
		b := chain.MarshalObject(action)
		require.Len(b, consts.ByteLen+action.Size())
		parsed, err := registry.UnmarshalBytes(b)
		require.NoError(err)
		require.Equal(action, parsed)
	}

	// Record addresses must be populated
	_, err := registry.UnmarshalBytes(chain.MarshalObject(&Increment{}))
	require.ErrorIs(err, codec.ErrFieldNotPopulated)
}
