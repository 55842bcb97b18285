// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
)

var _ Immutable = (*DatabaseReader)(nil)

// DatabaseReader implements [state.Immutable] on top of a database.
type DatabaseReader struct {
	db database.KeyValueReader
}

func NewDatabaseReader(db database.KeyValueReader) *DatabaseReader {
	return &DatabaseReader{db: db}
}

func (d *DatabaseReader) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return d.db.Get(key)
}
