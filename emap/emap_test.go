// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emap

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

type TestTx struct {
	id ids.ID
	t  int64
}

func (tx *TestTx) ID() ids.ID    { return tx.id }
func (tx *TestTx) Expiry() int64 { return tx.t }

func TestEmapAddIDGenesis(t *testing.T) {
	require := require.New(t)
	e := NewEMap[*TestTx]()

	tx := &TestTx{id: ids.GenerateTestID(), t: 1000}
	e.Add([]*TestTx{tx})
	require.True(e.Any([]*TestTx{tx}))
	require.Equal(1, e.Len())

	// Adding again is a no-op
	e.Add([]*TestTx{tx})
	require.Equal(1, e.Len())
}

func TestEmapSameBucket(t *testing.T) {
	require := require.New(t)
	e := NewEMap[*TestTx]()

	txs := []*TestTx{
		{id: ids.GenerateTestID(), t: 2000},
		{id: ids.GenerateTestID(), t: 2000},
	}
	e.Add(txs)
	require.Len(e.groups, 1)
	require.Len(e.groups[2000].ids, 2)
	require.Equal(1, e.expiries.Len())
}

func TestSetMin(t *testing.T) {
	require := require.New(t)
	e := NewEMap[*TestTx]()

	early := &TestTx{id: ids.GenerateTestID(), t: 1000}
	mid := &TestTx{id: ids.GenerateTestID(), t: 2000}
	late := &TestTx{id: ids.GenerateTestID(), t: 3000}
	e.Add([]*TestTx{late, early, mid})

	evicted := e.SetMin(3000)
	require.ElementsMatch([]ids.ID{early.id, mid.id}, evicted)
	require.False(e.Any([]*TestTx{early, mid}))
	require.True(e.Any([]*TestTx{late}))
	require.Equal(1, e.Len())

	require.Empty(e.SetMin(3000))
	require.Equal([]ids.ID{late.id}, e.SetMin(3001))
	require.Zero(e.Len())
	require.Empty(e.groups)
}
