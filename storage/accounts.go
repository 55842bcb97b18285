// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/near/borsh-go"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/state"
)

// Account is a record allocated at an address and owned by a program. The
// lamports held by an account are its rent deposit and are returned when the
// account is closed.
type Account struct {
	Owner    [ids.IDLen]byte
	Lamports uint64
	Data     []byte
}

func (a *Account) OwnerID() ids.ID {
	return ids.ID(a.Owner)
}

// GetAccount returns the account stored at [addr] and whether it exists.
func GetAccount(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (*Account, bool, error) {
	v, err := im.GetValue(ctx, AccountKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	acct, err := ParseAccount(v)
	if err != nil {
		return nil, false, err
	}
	return acct, true, nil
}

// ParseAccount decodes a stored account.
func ParseAccount(v []byte) (*Account, error) {
	var acct Account
	if err := borsh.Deserialize(&acct, v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAccount, err)
	}
	return &acct, nil
}

func SetAccount(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	acct *Account,
) error {
	v, err := borsh.Serialize(*acct)
	if err != nil {
		return err
	}
	return mu.Insert(ctx, AccountKey(addr), v)
}

func DeleteAccount(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
) error {
	return mu.Remove(ctx, AccountKey(addr))
}

// CreateAccount allocates an account of [space] bytes at [addr] owned by
// [owner]. [payer] funds the rent deposit, which is returned.
func CreateAccount(
	ctx context.Context,
	mu state.Mutable,
	rent Rent,
	payer codec.Address,
	addr codec.Address,
	owner ids.ID,
	data []byte,
) (uint64, error) {
	_, exists, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: %s", ErrAccountAlreadyInUse, addr)
	}
	deposit, err := rent.MinimumBalance(len(data))
	if err != nil {
		return 0, err
	}
	if _, err := SubBalance(ctx, mu, payer, deposit); err != nil {
		return 0, err
	}
	return deposit, SetAccount(ctx, mu, addr, &Account{
		Owner:    owner,
		Lamports: deposit,
		Data:     data,
	})
}

// CloseAccount removes the account at [addr] and credits its lamports to
// [recipient]. The refunded amount is returned.
func CloseAccount(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	recipient codec.Address,
) (uint64, error) {
	acct, exists, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
	}
	if err := DeleteAccount(ctx, mu, addr); err != nil {
		return 0, err
	}
	if _, err := AddBalance(ctx, mu, recipient, acct.Lamports); err != nil {
		return 0, err
	}
	return acct.Lamports, nil
}
