// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// Parsing
	ErrInvalidObject = errors.New("invalid object")
	ErrNoActions     = errors.New("no actions")

	// Pre-execution
	ErrMisalignedTime    = errors.New("misaligned time")
	ErrTimestampTooLate  = errors.New("timestamp too late")
	ErrTimestampTooEarly = errors.New("timestamp too early")
	ErrInvalidChainID    = errors.New("invalid chain ID")
	ErrTooManyActions    = errors.New("too many actions")
	ErrDuplicateTx       = errors.New("duplicate transaction")
	ErrAuthFailed        = errors.New("auth failed")

	// Execution
	ErrInvalidKeyValue     = errors.New("invalid key or value")
	ErrMissingValidator    = errors.New("missing account validator")
	ErrInvalidAccountState = errors.New("invalid account state")
)
