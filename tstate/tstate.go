// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TState defines a struct for storing temporary state.
type TState struct {
	l           sync.RWMutex
	changedKeys map[string]maybe.Maybe[[]byte]
	ops         int
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(changedSize int) *TState {
	return &TState{
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) getChangedValue(_ context.Context, key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// PendingChanges returns the number of keys modified since [TState] was
// created.
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// OpIndex returns the number of operations committed to [TState].
func (ts *TState) OpIndex() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return ts.ops
}

// WriteChanges writes all changes in [TState] to [w] in key order.
//
// Once [WriteChanges] is called, [TState] should not be used again (as the
// bytes stored are consumed).
func (ts *TState) WriteChanges(w database.KeyValueWriterDeleter) error {
	ts.l.RLock()
	defer ts.l.RUnlock()

	changed := maps.Keys(ts.changedKeys)
	slices.Sort(changed)
	for _, key := range changed {
		v := ts.changedKeys[key]
		if v.IsNothing() {
			if err := w.Delete([]byte(key)); err != nil {
				return err
			}
			continue
		}
		if err := w.Put([]byte(key), v.Value()); err != nil {
			return err
		}
	}
	return nil
}
