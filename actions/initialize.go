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
)

var _ chain.Action = (*Initialize)(nil)

// Initialize creates a counter record at [Counter] with a count of 0. The
// actor pays the rent deposit of the record.
type Initialize struct {
	Counter codec.Address `json:"counter"`
}

func (*Initialize) GetTypeID() uint8 {
	return consts.InitializeID
}

func (i *Initialize) StateKeys(actor codec.Address) state.Keys {
	return state.Keys{
		string(storage.BalanceKey(actor)):     state.Read | state.Write,
		string(storage.AccountKey(i.Counter)): state.All,
	}
}

func (i *Initialize) Accounts(codec.Address) []chain.AccountRequirement {
	return []chain.AccountRequirement{
		{Address: i.Counter, State: chain.Uninitialized},
	}
}

func (i *Initialize) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (chain.Object, error) {
	if _, err := storage.CreateCounter(ctx, mu, storage.RentFromRules(r), actor, i.Counter); err != nil {
		return nil, err
	}
	return &CounterResult{Count: 0}, nil
}

func (*Initialize) Size() int {
	return codec.AddressLen
}

func (i *Initialize) Marshal(p *codec.Packer) {
	p.PackAddress(i.Counter)
}

func UnmarshalInitialize(p *codec.Packer) (chain.Action, error) {
	var i Initialize
	p.UnpackAddress(&i.Counter)
	return &i, p.Err()
}
