// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import "errors"

var (
	ErrClosed          = errors.New("vm closed")
	ErrNoTransactions  = errors.New("no transactions")
	ErrGenesisMismatch = errors.New("genesis does not match database")
)
