// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/near/borsh-go"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
)

const DiscriminatorLen = 8

// CounterSpace is the size of a counter record: the discriminator followed by
// the count.
const CounterSpace = DiscriminatorLen + consts.Uint8Len

// CounterDiscriminator tags the data of every counter record.
var CounterDiscriminator = Discriminator("Counter")

// Discriminator returns the type tag stored at the start of a record named
// [name].
func Discriminator(name string) []byte {
	return hashing.ComputeHash256([]byte("account:" + name))[:DiscriminatorLen]
}

// Counter is the data held by a counter record.
type Counter struct {
	Count uint8
}

func EncodeCounter(c *Counter) ([]byte, error) {
	v, err := borsh.Serialize(*c)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 0, CounterSpace)
	data = append(data, CounterDiscriminator...)
	return append(data, v...), nil
}

func DecodeCounter(data []byte) (*Counter, error) {
	if len(data) != CounterSpace || !bytes.Equal(data[:DiscriminatorLen], CounterDiscriminator) {
		return nil, ErrAccountDiscriminatorMismatch
	}
	var c Counter
	if err := borsh.Deserialize(&c, data[DiscriminatorLen:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAccountDiscriminatorMismatch, err)
	}
	return &c, nil
}

// CreateCounter allocates a zeroed counter record at [addr], funded by
// [payer]. The deposit taken from [payer] is returned.
func CreateCounter(
	ctx context.Context,
	mu state.Mutable,
	rent Rent,
	payer codec.Address,
	addr codec.Address,
) (uint64, error) {
	data, err := EncodeCounter(&Counter{})
	if err != nil {
		return 0, err
	}
	return CreateAccount(ctx, mu, rent, payer, addr, consts.ProgramID, data)
}

// GetCounter returns the count of the record at [addr].
func GetCounter(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (uint8, error) {
	acct, exists, err := GetAccount(ctx, im, addr)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
	}
	c, err := DecodeCounter(acct.Data)
	if err != nil {
		return 0, err
	}
	return c.Count, nil
}

// SetCounter overwrites the count of the existing record at [addr].
func SetCounter(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	count uint8,
) error {
	acct, exists, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
	}
	data, err := EncodeCounter(&Counter{Count: count})
	if err != nil {
		return err
	}
	acct.Data = data
	return SetAccount(ctx, mu, addr, acct)
}
