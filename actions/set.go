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

var _ chain.Action = (*Set)(nil)

// Set overwrites the count of [Counter] with [Value].
type Set struct {
	Counter codec.Address `json:"counter"`
	Value   uint8         `json:"value"`
}

func (*Set) GetTypeID() uint8 {
	return consts.SetID
}

func (s *Set) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.AccountKey(s.Counter)): state.Read | state.Write,
	}
}

func (s *Set) Accounts(codec.Address) []chain.AccountRequirement {
	return []chain.AccountRequirement{
		{Address: s.Counter, State: chain.Active},
	}
}

func (s *Set) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	_ codec.Address,
	_ ids.ID,
) (chain.Object, error) {
	if err := storage.SetCounter(ctx, mu, s.Counter, s.Value); err != nil {
		return nil, err
	}
	return &CounterResult{Count: s.Value}, nil
}

func (*Set) Size() int {
	return codec.AddressLen + consts.Uint8Len
}

func (s *Set) Marshal(p *codec.Packer) {
	p.PackAddress(s.Counter)
	p.PackByte(s.Value)
}

func UnmarshalSet(p *codec.Packer) (chain.Action, error) {
	var s Set
	p.UnpackAddress(&s.Counter)
	s.Value = p.UnpackByte()
	return &s, p.Err()
}
