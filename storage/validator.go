// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"fmt"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
)

var _ chain.AccountValidator = (*AccountValidator)(nil)

// AccountValidator checks that counter records are in the state an action
// expects before it executes.
type AccountValidator struct{}

func (AccountValidator) ValidateAccount(
	ctx context.Context,
	im state.Immutable,
	req chain.AccountRequirement,
) error {
	acct, exists, err := GetAccount(ctx, im, req.Address)
	if err != nil {
		return err
	}
	switch req.State {
	case chain.Uninitialized:
		if exists {
			return fmt.Errorf("%w: %s", ErrAccountAlreadyInUse, req.Address)
		}
		return nil
	case chain.Active:
		if !exists {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, req.Address)
		}
		if acct.OwnerID() != consts.ProgramID {
			return fmt.Errorf("%w: owner=%s", ErrAccountOwnerMismatch, acct.OwnerID())
		}
		if _, err := DecodeCounter(acct.Data); err != nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", chain.ErrInvalidAccountState, req.State)
	}
}
