// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import "errors"

var (
	ErrNoKey       = errors.New("no key configured")
	ErrNoURI       = errors.New("no uri configured")
	ErrKeyExists   = errors.New("key already exists")
	ErrTxFailed    = errors.New("tx failed on-chain")
	ErrNoRecord    = errors.New("counter record does not exist")
	ErrInvalidSeed = errors.New("invalid record seed")
)
