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

var _ chain.Action = (*Close)(nil)

// Close removes the record at [Counter] and returns its deposit to the actor.
type Close struct {
	Counter codec.Address `json:"counter"`
}

func (*Close) GetTypeID() uint8 {
	return consts.CloseID
}

func (c *Close) StateKeys(actor codec.Address) state.Keys {
	return state.Keys{
		string(storage.AccountKey(c.Counter)): state.Read | state.Write,
		string(storage.BalanceKey(actor)):     state.All,
	}
}

func (c *Close) Accounts(codec.Address) []chain.AccountRequirement {
	return []chain.AccountRequirement{
		{Address: c.Counter, State: chain.Active},
	}
}

func (c *Close) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (chain.Object, error) {
	refund, err := storage.CloseAccount(ctx, mu, c.Counter, actor)
	if err != nil {
		return nil, err
	}
	return &CloseResult{Refund: refund}, nil
}

func (*Close) Size() int {
	return codec.AddressLen
}

func (c *Close) Marshal(p *codec.Packer) {
	p.PackAddress(c.Counter)
}

func UnmarshalClose(p *codec.Packer) (chain.Action, error) {
	var c Close
	p.UnpackAddress(&c.Counter)
	return &c, p.Err()
}
