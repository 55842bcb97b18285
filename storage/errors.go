// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrAccountNotFound              = errors.New("account not found")
	ErrAccountOwnerMismatch         = errors.New("account not owned by program")
	ErrAccountDiscriminatorMismatch = errors.New("account discriminator mismatch")
	ErrAccountAlreadyInUse          = errors.New("account already in use")
	ErrInsufficientFunds            = errors.New("insufficient funds")
	ErrInvalidBalance               = errors.New("invalid balance")
	ErrInvalidAccount               = errors.New("invalid account")
)
