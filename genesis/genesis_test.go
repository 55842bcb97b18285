// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/chain/chaintest"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/trace"
)

func TestDefaultRent(t *testing.T) {
	require := require.New(t)

	g, err := New(nil)
	require.NoError(err)
	rules := g.Rules(ids.GenerateTestID())
	deposit, err := storage.RentFromRules(rules).MinimumBalance(storage.CounterSpace)
	require.NoError(err)
	require.Equal(uint64(953_520), deposit)
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Genesis)
		expectedErr error
	}{
		{
			name:        "hrp",
			modify:      func(g *Genesis) { g.HRP = "other" },
			expectedErr: ErrInvalidHRP,
		},
		{
			name:        "validity window",
			modify:      func(g *Genesis) { g.ValidityWindow = 1_500 },
			expectedErr: ErrInvalidValidityWindow,
		},
		{
			name:        "max actions",
			modify:      func(g *Genesis) { g.MaxActionsPerTx = 0 },
			expectedErr: ErrInvalidMaxActions,
		},
		{
			name:        "rent",
			modify:      func(g *Genesis) { g.ExemptionThreshold = 0 },
			expectedErr: ErrInvalidRent,
		},
		{
			name:        "rent overflow",
			modify:      func(g *Genesis) { g.LamportsPerByteYear = consts.MaxUint64 },
			expectedErr: ErrInvalidRent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			g := Default()
			tt.modify(g)
			b, err := json.Marshal(g)
			require.NoError(err)
			_, err = New(b)
			require.ErrorIs(err, tt.expectedErr)
		})
	}
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	addr := codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	g := Default()
	g.CustomAllocation = []*CustomAllocation{
		{Address: codec.MustAddressBech32(consts.HRP, addr), Balance: 10_000_000},
	}
	store := chaintest.NewInMemoryStore()
	require.NoError(g.Load(ctx, trace.Noop, store))
	bal, err := storage.GetBalance(ctx, store, addr)
	require.NoError(err)
	require.Equal(uint64(10_000_000), bal)

	g.CustomAllocation[0].Address = codec.MustAddressBech32("wrong", addr)
	require.ErrorIs(g.Load(ctx, trace.Noop, chaintest.NewInMemoryStore()), codec.ErrIncorrectHRP)
}

func TestChainID(t *testing.T) {
	require := require.New(t)

	b, err := json.Marshal(Default())
	require.NoError(err)
	require.Equal(ChainID(b), ChainID(b))

	g := Default()
	g.NetworkID = 5
	other, err := json.Marshal(g)
	require.NoError(err)
	require.NotEqual(ChainID(b), ChainID(other))
}

func TestStateKeys(t *testing.T) {
	require := require.New(t)

	addr := codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	g := Default()
	g.CustomAllocation = []*CustomAllocation{
		{Address: codec.MustAddressBech32(consts.HRP, addr), Balance: 1},
		{Address: codec.MustAddressBech32(consts.HRP, addr), Balance: 2},
	}
	stateKeys, err := g.StateKeys()
	require.NoError(err)
	require.Len(stateKeys, 1)
	require.Contains(stateKeys, string(storage.BalanceKey(addr)))
}
