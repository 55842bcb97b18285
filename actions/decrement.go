// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ chain.Action = (*Decrement)(nil)

// Decrement subtracts one from the count of [Counter]. It fails with
// [ErrArithmeticUnderflow] if the count is 0.
type Decrement struct {
	Counter codec.Address `json:"counter"`
}

func (*Decrement) GetTypeID() uint8 {
	return consts.DecrementID
}

func (d *Decrement) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.AccountKey(d.Counter)): state.Read | state.Write,
	}
}

func (d *Decrement) Accounts(codec.Address) []chain.AccountRequirement {
	return []chain.AccountRequirement{
		{Address: d.Counter, State: chain.Active},
	}
}

func (d *Decrement) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	_ codec.Address,
	_ ids.ID,
) (chain.Object, error) {
	count, err := storage.GetCounter(ctx, mu, d.Counter)
	if err != nil {
		return nil, err
	}
	count, err = smath.Sub(count, 1)
	if err != nil {
		return nil, ErrArithmeticUnderflow
	}
	if err := storage.SetCounter(ctx, mu, d.Counter, count); err != nil {
		return nil, err
	}
	return &CounterResult{Count: count}, nil
}

func (*Decrement) Size() int {
	return codec.AddressLen
}

func (d *Decrement) Marshal(p *codec.Packer) {
	p.PackAddress(d.Counter)
}

func UnmarshalDecrement(p *codec.Packer) (chain.Action, error) {
	var d Decrement
	p.UnpackAddress(&d.Counter)
	return &d, p.Err()
}
