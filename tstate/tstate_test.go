// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
)

var (
	testKey  = string(keys.EncodeChunks([]byte("key"), 1))
	testVal  = []byte("value")
	otherKey = string(keys.EncodeChunks([]byte("other"), 1))
)

func TestGetValue(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{testKey: state.Read}, map[string][]byte{testKey: testVal})
	val, err := tsv.GetValue(ctx, []byte(testKey))
	require.NoError(err)
	require.Equal(testVal, val)
}

func TestGetValueNoStorage(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{testKey: state.Read}, map[string][]byte{})
	_, err := tsv.GetValue(ctx, []byte(testKey))
	require.ErrorIs(err, database.ErrNotFound)
}

func TestGetValueOutOfScope(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{}, map[string][]byte{testKey: testVal})
	_, err := tsv.GetValue(ctx, []byte(testKey))
	require.ErrorIs(err, ErrInvalidKeyOrPermission)
}

func TestInsertNew(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// Read only cannot allocate
	tsv := ts.NewView(state.Keys{testKey: state.Read}, map[string][]byte{})
	require.ErrorIs(tsv.Insert(ctx, []byte(testKey), testVal), ErrInvalidKeyOrPermission)

	tsv = ts.NewView(state.Keys{testKey: state.All}, map[string][]byte{})
	require.NoError(tsv.Insert(ctx, []byte(testKey), testVal))
	require.Equal(1, tsv.OpIndex())
	val, err := tsv.GetValue(ctx, []byte(testKey))
	require.NoError(err)
	require.Equal(testVal, val)

	allocs, writes := tsv.KeyOperations()
	require.Contains(allocs, testKey)
	require.Contains(writes, testKey)
}

func TestInsertUpdate(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{testKey: state.Write}, map[string][]byte{testKey: testVal})
	newVal := []byte("newvalue")
	require.NoError(tsv.Insert(ctx, []byte(testKey), newVal))
	val, err := tsv.GetValue(ctx, []byte(testKey))
	require.NoError(err)
	require.Equal(newVal, val)

	allocs, _ := tsv.KeyOperations()
	require.Empty(allocs)
}

func TestInsertTooLarge(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{testKey: state.All}, map[string][]byte{})
	require.ErrorIs(tsv.Insert(ctx, []byte(testKey), make([]byte, 200)), ErrInvalidKeyValue)
}

func TestDisableAllocation(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{testKey: state.All}, map[string][]byte{})
	tsv.DisableAllocation()
	require.ErrorIs(tsv.Insert(ctx, []byte(testKey), testVal), ErrAllocationDisabled)
	tsv.EnableAllocation()
	require.NoError(tsv.Insert(ctx, []byte(testKey), testVal))
}

func TestRemove(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{testKey: state.Write}, map[string][]byte{testKey: testVal})
	require.NoError(tsv.Remove(ctx, []byte(testKey)))
	_, err := tsv.GetValue(ctx, []byte(testKey))
	require.ErrorIs(err, database.ErrNotFound)

	// Removing a missing key is a no-op
	require.NoError(tsv.Remove(ctx, []byte(testKey)))
	require.Equal(1, tsv.OpIndex())
}

func TestRollback(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(
		state.Keys{testKey: state.All, otherKey: state.All},
		map[string][]byte{testKey: testVal},
	)
	require.NoError(tsv.Insert(ctx, []byte(testKey), []byte("first")))
	restore := tsv.OpIndex()
	require.NoError(tsv.Insert(ctx, []byte(testKey), []byte("second")))
	require.NoError(tsv.Insert(ctx, []byte(otherKey), testVal))
	require.Equal(3, tsv.OpIndex())

	tsv.Rollback(ctx, restore)
	require.Equal(restore, tsv.OpIndex())
	val, err := tsv.GetValue(ctx, []byte(testKey))
	require.NoError(err)
	require.Equal([]byte("first"), val)
	_, err = tsv.GetValue(ctx, []byte(otherKey))
	require.ErrorIs(err, database.ErrNotFound)

	tsv.Rollback(ctx, 0)
	val, err = tsv.GetValue(ctx, []byte(testKey))
	require.NoError(err)
	require.Equal(testVal, val)
	require.Zero(tsv.PendingChanges())
}

func TestCommitAndWriteChanges(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(
		state.Keys{testKey: state.All, otherKey: state.All},
		map[string][]byte{otherKey: testVal},
	)
	require.NoError(tsv.Insert(ctx, []byte(testKey), testVal))
	require.NoError(tsv.Remove(ctx, []byte(otherKey)))
	tsv.Commit()
	require.Equal(2, ts.PendingChanges())
	require.Equal(2, ts.OpIndex())

	// Later views observe committed changes
	next := ts.NewView(state.Keys{testKey: state.Read, otherKey: state.Read}, map[string][]byte{otherKey: testVal})
	val, err := next.GetValue(ctx, []byte(testKey))
	require.NoError(err)
	require.Equal(testVal, val)
	_, err = next.GetValue(ctx, []byte(otherKey))
	require.ErrorIs(err, database.ErrNotFound)

	db := memdb.New()
	require.NoError(db.Put([]byte(otherKey), testVal))
	require.NoError(ts.WriteChanges(db))
	has, err := db.Has([]byte(otherKey))
	require.NoError(err)
	require.False(has)
	v, err := db.Get([]byte(testKey))
	require.NoError(err)
	require.Equal(testVal, v)
}
