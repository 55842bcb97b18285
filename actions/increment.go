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

var _ chain.Action = (*Increment)(nil)

// Increment adds one to the count of [Counter]. It fails with
// [ErrArithmeticOverflow] if the count is already 255.
type Increment struct {
	Counter codec.Address `json:"counter"`
}

func (*Increment) GetTypeID() uint8 {
	return consts.IncrementID
}

func (i *Increment) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.AccountKey(i.Counter)): state.Read | state.Write,
	}
}

func (i *Increment) Accounts(codec.Address) []chain.AccountRequirement {
	return []chain.AccountRequirement{
		{Address: i.Counter, State: chain.Active},
	}
}

func (i *Increment) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	_ codec.Address,
	_ ids.ID,
) (chain.Object, error) {
	count, err := storage.GetCounter(ctx, mu, i.Counter)
	if err != nil {
		return nil, err
	}
	count, err = smath.Add(count, 1)
	if err != nil {
		return nil, ErrArithmeticOverflow
	}
	if err := storage.SetCounter(ctx, mu, i.Counter, count); err != nil {
		return nil, err
	}
	return &CounterResult{Count: count}, nil
}

func (*Increment) Size() int {
	return codec.AddressLen
}

func (i *Increment) Marshal(p *codec.Packer) {
	p.PackAddress(i.Counter)
}

func UnmarshalIncrement(p *codec.Packer) (chain.Action, error) {
	var i Increment
	p.UnpackAddress(&i.Counter)
	return &i, p.Err()
}
