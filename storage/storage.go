// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// State
// 0x0/ (balance)
//   -> [address] => lamports
// 0x1/ (account)
//   -> [address] => borsh(owner | lamports | data)
// 0x2/ (genesis)
//   -> chainID

const (
	balancePrefix byte = iota
	accountPrefix
	genesisPrefix
)

const (
	BalanceChunks uint16 = 1
	AccountChunks uint16 = 1
)

func prefixedKey(prefix byte, addr codec.Address, chunks uint16) []byte {
	k := make([]byte, consts.ByteLen+codec.AddressLen+consts.Uint16Len)
	k[0] = prefix
	copy(k[1:], addr[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], chunks)
	return k
}

// [balancePrefix] + [address]
func BalanceKey(addr codec.Address) []byte {
	return prefixedKey(balancePrefix, addr, BalanceChunks)
}

// [accountPrefix] + [address]
func AccountKey(addr codec.Address) []byte {
	return prefixedKey(accountPrefix, addr, AccountChunks)
}

// GenesisKey marks that the genesis allocations have been applied. It is only
// accessed outside of transaction execution.
func GenesisKey() []byte {
	return []byte{genesisPrefix}
}

// GetBalance returns the balance of [addr]. If [addr] has no balance, 0 is
// returned.
func GetBalance(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (uint64, error) {
	_, bal, _, err := getBalance(ctx, im, addr)
	return bal, err
}

func getBalance(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) ([]byte, uint64, bool, error) {
	k := BalanceKey(addr)
	bal, exists, err := innerGetBalance(im.GetValue(ctx, k))
	return k, bal, exists, err
}

func innerGetBalance(
	v []byte,
	err error,
) (uint64, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	val, err := database.ParseUInt64(v)
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func SetBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	balance uint64,
) error {
	return setBalance(ctx, mu, BalanceKey(addr), balance)
}

func setBalance(
	ctx context.Context,
	mu state.Mutable,
	key []byte,
	balance uint64,
) error {
	return mu.Insert(ctx, key, binary.BigEndian.AppendUint64(nil, balance))
}

func AddBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount uint64,
) (uint64, error) {
	key, bal, _, err := getBalance(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add balance (bal=%d, addr=%s, amount=%d)",
			ErrInvalidBalance,
			bal,
			addr,
			amount,
		)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}

func SubBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount uint64,
) (uint64, error) {
	key, bal, _, err := getBalance(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Sub(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: balance=%d required=%d addr=%s",
			ErrInsufficientFunds,
			bal,
			amount,
			addr,
		)
	}
	if nbal == 0 {
		// If there is no balance left, we should delete the record instead of
		// setting it to 0.
		return 0, mu.Remove(ctx, key)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}

// GetGenesis returns the chain ID whose genesis allocations were applied to
// [db], if any.
func GetGenesis(db database.KeyValueReader) (ids.ID, bool, error) {
	v, err := db.Get(GenesisKey())
	if errors.Is(err, database.ErrNotFound) {
		return ids.Empty, false, nil
	}
	if err != nil {
		return ids.Empty, false, err
	}
	chainID, err := ids.ToID(v)
	if err != nil {
		return ids.Empty, false, err
	}
	return chainID, true, nil
}

// SetGenesis marks the genesis allocations of [chainID] as applied.
func SetGenesis(db database.KeyValueWriter, chainID ids.ID) error {
	return db.Put(GenesisKey(), chainID[:])
}
