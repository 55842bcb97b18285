// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/countervm/chain"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// Rent computes the deposit that makes an account exempt from rent.
type Rent struct {
	AccountStorageOverhead uint64
	LamportsPerByteYear    uint64
	ExemptionThreshold     uint64
}

func RentFromRules(r chain.Rules) Rent {
	return Rent{
		AccountStorageOverhead: r.GetAccountStorageOverhead(),
		LamportsPerByteYear:    r.GetLamportsPerByteYear(),
		ExemptionThreshold:     r.GetExemptionThreshold(),
	}
}

// MinimumBalance returns the deposit required for an account holding [space]
// bytes of data.
func (r Rent) MinimumBalance(space int) (uint64, error) {
	bytes, err := smath.Add(r.AccountStorageOverhead, uint64(space))
	if err != nil {
		return 0, err
	}
	perYear, err := smath.Mul(bytes, r.LamportsPerByteYear)
	if err != nil {
		return 0, err
	}
	return smath.Mul(perYear, r.ExemptionThreshold)
}
