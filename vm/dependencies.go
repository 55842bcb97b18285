// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/countervm/chain"
)

// DB is the subset of [database.Database] the VM persists state to.
type DB interface {
	database.KeyValueReader
	NewBatch() database.Batch
}

// Listener is notified of every executed transaction. It is called while
// the VM lock is held and must not block.
type Listener interface {
	Executed(ctx context.Context, tx *chain.Transaction, result *chain.Result, timestamp int64)
}

type Config struct {
	AuthVerificationCores int
	RecentResultsSize     int
}

func NewDefaultConfig() Config {
	return Config{
		AuthVerificationCores: 1,
		RecentResultsSize:     1_024,
	}
}
