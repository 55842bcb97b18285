// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emap

import (
	"encoding/binary"
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/countervm/heap"
)

// Item is remembered by an [EMap] until its expiry passes.
type Item interface {
	ID() ids.ID
	Expiry() int64
}

// expiryGroup holds every ID that expires at the same time.
type expiryGroup struct {
	expiry int64
	ids    []ids.ID
}

// EMap remembers item IDs until [SetMin] moves past their expiry. It is used
// to reject transactions that were already executed while they are still
// valid.
type EMap[T Item] struct {
	l sync.RWMutex

	expiries *heap.Heap[*expiryGroup, int64]
	groups   map[int64]*expiryGroup
	ids      set.Set[ids.ID]
}

func NewEMap[T Item]() *EMap[T] {
	return &EMap[T]{
		expiries: heap.New[*expiryGroup, int64](128, true),
		groups:   make(map[int64]*expiryGroup),
		ids:      set.Set[ids.ID]{},
	}
}

// groupID identifies the heap entry of the group expiring at [expiry].
func groupID(expiry int64) ids.ID {
	var id ids.ID
	binary.BigEndian.PutUint64(id[:], uint64(expiry))
	return id
}

// Add remembers [items]. Items that are already remembered keep their
// original expiry.
func (e *EMap[T]) Add(items []T) {
	e.l.Lock()
	defer e.l.Unlock()

	for _, item := range items {
		id := item.ID()
		if e.ids.Contains(id) {
			continue
		}
		e.ids.Add(id)

		expiry := item.Expiry()
		if g, ok := e.groups[expiry]; ok {
			g.ids = append(g.ids, id)
			continue
		}
		g := &expiryGroup{expiry: expiry, ids: []ids.ID{id}}
		e.groups[expiry] = g
		e.expiries.Push(&heap.Entry[*expiryGroup, int64]{
			ID:   groupID(expiry),
			Item: g,
			Val:  expiry,
		})
	}
}

// SetMin forgets every item that expires before [t] and returns their IDs.
func (e *EMap[T]) SetMin(t int64) []ids.ID {
	e.l.Lock()
	defer e.l.Unlock()

	var evicted []ids.ID
	for {
		first := e.expiries.First()
		if first == nil || first.Val >= t {
			return evicted
		}
		e.expiries.Pop()
		delete(e.groups, first.Val)
		for _, id := range first.Item.ids {
			e.ids.Remove(id)
		}
		evicted = append(evicted, first.Item.ids...)
	}
}

// Any reports whether any of [items] is remembered.
func (e *EMap[T]) Any(items []T) bool {
	e.l.RLock()
	defer e.l.RUnlock()

	for _, item := range items {
		if e.ids.Contains(item.ID()) {
			return true
		}
	}
	return false
}

func (e *EMap[T]) Len() int {
	e.l.RLock()
	defer e.l.RUnlock()

	return e.ids.Len()
}
