// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
)

const defaultOps = 4

var _ state.Mutable = (*TStateView)(nil)

type op struct {
	k string

	pastExists  bool
	pastV       []byte
	pastChanged bool
}

type TStateView struct {
	ts                 *TState
	pendingChangedKeys map[string]maybe.Maybe[[]byte]

	// Ops is a record of all operations performed on [TState]. Tracking
	// operations allows for reverting state to a certain point-in-time.
	ops []*op

	// scope is the set of keys this view may touch and the permissions held
	// on each; scopeStorage holds the values prefetched for them.
	scope        state.Keys
	scopeStorage map[string][]byte

	canAllocate bool
	allocations map[string]uint16
	writes      map[string]uint16
}

// NewView returns a view over [ts] limited to [scope]. [storage] must contain
// the persisted value of every key in [scope] that exists.
func (ts *TState) NewView(scope state.Keys, storage map[string][]byte) *TStateView {
	return &TStateView{
		ts:                 ts,
		pendingChangedKeys: make(map[string]maybe.Maybe[[]byte], len(scope)),

		ops: make([]*op, 0, defaultOps),

		scope:        scope,
		scopeStorage: storage,

		canAllocate: true, // default to allowing allocation
		allocations: make(map[string]uint16, len(scope)),
		writes:      make(map[string]uint16, len(scope)),
	}
}

// Rollback restores the TState to the ts.op[restorePoint] operation.
func (ts *TStateView) Rollback(_ context.Context, restorePoint int) {
	for i := len(ts.ops) - 1; i >= restorePoint; i-- {
		op := ts.ops[i]

		// allocate+write/write -> base state
		//
		// Remove all key changes from the view if the key was not previously
		// modified.
		if !op.pastChanged {
			delete(ts.allocations, op.k)
			delete(ts.writes, op.k)
			delete(ts.pendingChangedKeys, op.k)
			continue
		}

		// allocate+write -> nothing
		//
		// If a key did not previously exist, we remove any allocations
		// and ensure [ts.writes] is set to 0.
		if !op.pastExists {
			delete(ts.allocations, op.k)
			ts.writes[op.k] = 0
			ts.pendingChangedKeys[op.k] = maybe.Nothing[[]byte]()
			continue
		}

		// write -> last value
		//
		// MaxChunks/NumChunks should never error because we previously
		// parsed [op.k] and [op.pastV]
		valueChunks, _ := keys.NumChunks(op.pastV)
		ts.writes[op.k] = valueChunks
		ts.pendingChangedKeys[op.k] = maybe.Some(op.pastV)
	}
	ts.ops = ts.ops[:restorePoint]
}

// OpIndex returns the number of operations done on ts.
func (ts *TStateView) OpIndex() int {
	return len(ts.ops)
}

// DisableAllocation causes [Insert] to return an error if
// it would create a new key.
//
// Note, creation defaults to true.
func (ts *TStateView) DisableAllocation() {
	ts.canAllocate = false
}

// EnableAllocation removes the forcer error case in [Insert]
// if a new key is created.
func (ts *TStateView) EnableAllocation() {
	ts.canAllocate = true
}

// KeyOperations returns the keys allocated and written since the view was
// created, with the number of chunks used by each.
func (ts *TStateView) KeyOperations() (map[string]uint16, map[string]uint16) {
	return ts.allocations, ts.writes
}

// checkScope returns whether [k] is in scope with [perm].
func (ts *TStateView) checkScope(_ context.Context, k []byte, perm state.Permissions) bool {
	return ts.scope[string(k)].Has(perm)
}

// GetValue returns the value associated with [key]. If [key] does not exist
// in scope or if it is not found in storage an error is returned.
func (ts *TStateView) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if !ts.checkScope(ctx, key, state.Read) {
		return nil, ErrInvalidKeyOrPermission
	}
	v, _, exists := ts.getValue(ctx, string(key))
	if !exists {
		return nil, database.ErrNotFound
	}
	return v, nil
}

func (ts *TStateView) getValue(ctx context.Context, key string) ([]byte, bool, bool) {
	if v, ok := ts.pendingChangedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	if v, changed, exists := ts.ts.getChangedValue(ctx, key); changed {
		return v, true, exists
	}
	if v, ok := ts.scopeStorage[key]; ok {
		return v, false, true
	}
	return nil, false, false
}

// Insert sets or updates ts.storage[key] to equal {value, false}.
//
// Any bytes passed into [Insert] will be consumed by [TState] and should
// not be modified/referenced after this call.
func (ts *TStateView) Insert(ctx context.Context, key []byte, value []byte) error {
	if !keys.VerifyValue(key, value) {
		return ErrInvalidKeyValue
	}
	valueChunks, ok := keys.NumChunks(value)
	if !ok {
		return ErrInvalidKeyValue
	}
	k := string(key)
	past, changed, exists := ts.getValue(ctx, k)
	if exists {
		if !ts.checkScope(ctx, key, state.Write) {
			return ErrInvalidKeyOrPermission
		}
		ts.writes[k] = valueChunks
	} else {
		if !ts.checkScope(ctx, key, state.Allocate|state.Write) {
			return ErrInvalidKeyOrPermission
		}
		if !ts.canAllocate {
			return ErrAllocationDisabled
		}
		keyChunks, _ := keys.MaxChunks(key)
		ts.allocations[k] = keyChunks
		ts.writes[k] = valueChunks
	}
	ts.pendingChangedKeys[k] = maybe.Some(value)
	ts.ops = append(ts.ops, &op{
		k: k,

		pastExists:  exists,
		pastV:       past,
		pastChanged: changed,
	})
	return nil
}

// Remove deletes a key-value pair from ts.storage.
func (ts *TStateView) Remove(ctx context.Context, key []byte) error {
	if !ts.checkScope(ctx, key, state.Write) {
		return ErrInvalidKeyOrPermission
	}
	k := string(key)
	past, changed, exists := ts.getValue(ctx, k)
	if !exists {
		// We do not update writes if the key does not exist.
		return nil
	}
	delete(ts.allocations, k)
	ts.writes[k] = 0
	ts.pendingChangedKeys[k] = maybe.Nothing[[]byte]()
	ts.ops = append(ts.ops, &op{
		k: k,

		pastExists:  true,
		pastV:       past,
		pastChanged: changed,
	})
	return nil
}

// PendingChanges returns the number of keys modified by the view.
func (ts *TStateView) PendingChanges() int {
	return len(ts.pendingChangedKeys)
}

// Commit moves all pending changes of the view into [TState].
func (ts *TStateView) Commit() {
	ts.ts.l.Lock()
	defer ts.ts.l.Unlock()

	for k, v := range ts.pendingChangedKeys {
		ts.ts.changedKeys[k] = v
	}
	ts.ts.ops += len(ts.ops)
}
