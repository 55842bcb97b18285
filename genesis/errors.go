// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import "errors"

var (
	ErrInvalidHRP            = errors.New("invalid hrp")
	ErrInvalidValidityWindow = errors.New("invalid validity window")
	ErrInvalidMaxActions     = errors.New("invalid max actions per tx")
	ErrInvalidRent           = errors.New("invalid rent parameters")
)
