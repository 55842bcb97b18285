// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain_test

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/chain/chaintest"
	"github.com/ava-labs/countervm/codec"
)

func TestBaseExecute(t *testing.T) {
	rules := chaintest.NewDefaultRules()
	tests := []struct {
		name      string
		base      *chain.Base
		timestamp int64
		err       error
	}{
		{
			name:      "valid",
			base:      &chain.Base{Timestamp: 10_000, ChainID: rules.ChainID},
			timestamp: 9_500,
		},
		{
			name:      "expiry equals now",
			base:      &chain.Base{Timestamp: 10_000, ChainID: rules.ChainID},
			timestamp: 10_000,
		},
		{
			name:      "misaligned",
			base:      &chain.Base{Timestamp: 10_001, ChainID: rules.ChainID},
			timestamp: 9_000,
			err:       chain.ErrMisalignedTime,
		},
		{
			name:      "expired",
			base:      &chain.Base{Timestamp: 10_000, ChainID: rules.ChainID},
			timestamp: 10_001,
			err:       chain.ErrTimestampTooLate,
		},
		{
			name:      "beyond validity window",
			base:      &chain.Base{Timestamp: 100_000, ChainID: rules.ChainID},
			timestamp: 10_000,
			err:       chain.ErrTimestampTooEarly,
		},
		{
			name:      "wrong chain",
			base:      &chain.Base{Timestamp: 10_000, ChainID: ids.Empty.Prefix(99)},
			timestamp: 10_000,
			err:       chain.ErrInvalidChainID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.base.Execute(rules.ChainID, rules, tt.timestamp), tt.err)
		})
	}
}

func TestUnmarshalBaseMisaligned(t *testing.T) {
	require := require.New(t)

	p := codec.NewWriter(chain.BaseSize, chain.BaseSize)
	(&chain.Base{Timestamp: 1_500, ChainID: ids.GenerateTestID()}).Marshal(p)
	_, err := chain.UnmarshalBase(codec.NewReader(p.Bytes(), chain.BaseSize))
	require.ErrorIs(err, chain.ErrMisalignedTime)
}
