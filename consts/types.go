// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Action TypeIDs
	InitializeID uint8 = 0
	IncrementID  uint8 = 1
	DecrementID  uint8 = 2
	SetID        uint8 = 3
	CloseID      uint8 = 4

	// Output TypeIDs
	CounterResultID uint8 = 0
	CloseResultID   uint8 = 1

	// Auth TypeIDs
	ED25519ID uint8 = 0

	// RecordAddressID prefixes addresses that are not backed by a signer
	// (Counter Records created by the CLI).
	RecordAddressID uint8 = 0xf0
)
