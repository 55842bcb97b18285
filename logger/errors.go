// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logger

import "errors"

var (
	ErrDuplicateLogger = errors.New("logger already exists")
	ErrUnknownLogger   = errors.New("unknown logger")
)
