// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"

	"github.com/ava-labs/countervm/state"
)

var _ state.Mutable = (*InMemoryStore)(nil)

// InMemoryStore exposes a memdb as [state.Mutable] so actions and storage
// helpers can run outside of a transaction view.
type InMemoryStore struct {
	db database.Database
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{db: memdb.New()}
}

func (i *InMemoryStore) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return i.db.Get(key)
}

func (i *InMemoryStore) Insert(_ context.Context, key []byte, value []byte) error {
	return i.db.Put(key, value)
}

func (i *InMemoryStore) Remove(_ context.Context, key []byte) error {
	return i.db.Delete(key)
}

// Has reports whether [key] is stored. Lookup errors are reported as absent.
func (i *InMemoryStore) Has(key []byte) bool {
	ok, err := i.db.Has(key)
	return err == nil && ok
}
