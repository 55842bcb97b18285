// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

var (
	_ chain.Object = (*CounterResult)(nil)
	_ chain.Object = (*CloseResult)(nil)
)

// CounterResult is the count of a record after an operation.
type CounterResult struct {
	Count uint8 `json:"count"`
}

func (*CounterResult) GetTypeID() uint8 {
	return consts.CounterResultID
}

func (*CounterResult) Size() int {
	return consts.Uint8Len
}

func (r *CounterResult) Marshal(p *codec.Packer) {
	p.PackByte(r.Count)
}

func UnmarshalCounterResult(p *codec.Packer) (chain.Object, error) {
	var r CounterResult
	r.Count = p.UnpackByte()
	return &r, p.Err()
}

// CloseResult is the deposit returned to the payer when a record is closed.
type CloseResult struct {
	Refund uint64 `json:"refund"`
}

func (*CloseResult) GetTypeID() uint8 {
	return consts.CloseResultID
}

func (*CloseResult) Size() int {
	return consts.Uint64Len
}

func (r *CloseResult) Marshal(p *codec.Packer) {
	p.PackUint64(r.Refund)
}

func UnmarshalCloseResult(p *codec.Packer) (chain.Object, error) {
	var r CloseResult
	r.Refund = p.UnpackUint64(false)
	return &r, p.Err()
}
