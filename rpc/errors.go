// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import "errors"

var (
	ErrTxNotFound     = errors.New("transaction not found")
	ErrInvalidSize    = errors.New("invalid account size")
	ErrMessageInvalid = errors.New("invalid message")
)
