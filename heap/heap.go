// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package heap

import (
	"cmp"
	"container/heap"

	"github.com/ava-labs/avalanchego/ids"
)

var _ heap.Interface = (*entries[any, int64])(nil)

// Entry is an [Item] prioritized by [Val] and looked up by [ID].
type Entry[I any, V cmp.Ordered] struct {
	ID   ids.ID
	Item I
	Val  V

	// Index is maintained by the heap.
	Index int
}

// Heap orders entries by value, smallest first for a min-heap and largest
// first otherwise. An ID can only be tracked once.
//
// Heap is not safe for concurrent use.
type Heap[I any, V cmp.Ordered] struct {
	entries *entries[I, V]
}

func New[I any, V cmp.Ordered](size int, isMinHeap bool) *Heap[I, V] {
	return &Heap[I, V]{
		entries: &entries[I, V]{
			isMinHeap: isMinHeap,
			items:     make([]*Entry[I, V], 0, size),
			byID:      make(map[ids.ID]*Entry[I, V], size),
		},
	}
}

func (h *Heap[I, V]) Len() int { return len(h.entries.items) }

func (h *Heap[I, V]) Get(id ids.ID) (*Entry[I, V], bool) {
	e, ok := h.entries.byID[id]
	return e, ok
}

func (h *Heap[I, V]) Has(id ids.ID) bool {
	_, ok := h.entries.byID[id]
	return ok
}

// Push adds [e] unless its ID is already tracked.
func (h *Heap[I, V]) Push(e *Entry[I, V]) {
	if h.Has(e.ID) {
		return
	}
	heap.Push(h.entries, e)
}

// Pop removes the first entry, or returns nil if the heap is empty.
func (h *Heap[I, V]) Pop() *Entry[I, V] {
	if h.Len() == 0 {
		return nil
	}
	return heap.Pop(h.entries).(*Entry[I, V])
}

// Remove removes the entry at [index], or returns nil if there is none.
func (h *Heap[I, V]) Remove(index int) *Entry[I, V] {
	if index < 0 || index >= h.Len() {
		return nil
	}
	return heap.Remove(h.entries, index).(*Entry[I, V])
}

// First returns the entry that [Pop] would remove without removing it.
func (h *Heap[I, V]) First() *Entry[I, V] {
	if h.Len() == 0 {
		return nil
	}
	return h.entries.items[0]
}

type entries[I any, V cmp.Ordered] struct {
	isMinHeap bool
	items     []*Entry[I, V]
	byID      map[ids.ID]*Entry[I, V]
}

func (e *entries[I, V]) Len() int { return len(e.items) }

func (e *entries[I, V]) Less(i, j int) bool {
	if e.isMinHeap {
		return e.items[i].Val < e.items[j].Val
	}
	return e.items[i].Val > e.items[j].Val
}

func (e *entries[I, V]) Swap(i, j int) {
	e.items[i], e.items[j] = e.items[j], e.items[i]
	e.items[i].Index = i
	e.items[j].Index = j
}

// Push is only called through [heap.Push], which has already checked that
// the ID is not tracked.
func (e *entries[I, V]) Push(x any) {
	entry := x.(*Entry[I, V])
	entry.Index = len(e.items)
	e.items = append(e.items, entry)
	e.byID[entry.ID] = entry
}

func (e *entries[I, V]) Pop() any {
	n := len(e.items) - 1
	entry := e.items[n]
	e.items[n] = nil
	e.items = e.items[:n]
	delete(e.byID, entry.ID)
	entry.Index = -1
	return entry
}
