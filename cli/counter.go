// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/utils"
	"github.com/ava-labs/countervm/vm"
)

// RecordAddress returns the address of the counter record derived from
// [seed]. An empty [seed] yields a random address.
func RecordAddress(seed string) (codec.Address, error) {
	if len(seed) > 0 {
		return codec.CreateAddress(consts.RecordAddressID, utils.ToID([]byte(seed))), nil
	}
	var id ids.ID
	if _, err := rand.Read(id[:]); err != nil {
		return codec.EmptyAddress, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	return codec.CreateAddress(consts.RecordAddressID, id), nil
}

// Initialize creates a counter record at [record], paid for by the default
// key.
func (h *Handler) Initialize(ctx context.Context, record codec.Address) error {
	addr, err := h.address(ctx, record)
	if err != nil {
		return err
	}
	utils.Outf("{{yellow}}record:{{/}} %s\n", addr)
	result, err := h.submit(ctx, &actions.Initialize{Counter: record})
	if err != nil {
		return err
	}
	return PrintOutputs(result)
}

func (h *Handler) Increment(ctx context.Context, record codec.Address) error {
	return h.execute(ctx, &actions.Increment{Counter: record})
}

func (h *Handler) Decrement(ctx context.Context, record codec.Address) error {
	return h.execute(ctx, &actions.Decrement{Counter: record})
}

func (h *Handler) Set(ctx context.Context, record codec.Address, value uint8) error {
	return h.execute(ctx, &actions.Set{Counter: record, Value: value})
}

// Close deletes [record] and refunds its deposit to the default key.
func (h *Handler) Close(ctx context.Context, record codec.Address) error {
	return h.execute(ctx, &actions.Close{Counter: record})
}

func (h *Handler) execute(ctx context.Context, action chain.Action) error {
	result, err := h.submit(ctx, action)
	if err != nil {
		return err
	}
	return PrintOutputs(result)
}

// Get prints the count stored at [record].
func (h *Handler) Get(ctx context.Context, record codec.Address) (uint8, error) {
	cli, err := h.Client()
	if err != nil {
		return 0, err
	}
	addr, err := cli.Address(ctx, record)
	if err != nil {
		return 0, err
	}
	count, exists, err := cli.Counter(ctx, addr)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrNoRecord, addr)
	}
	utils.Outf("{{yellow}}record:{{/}} %s {{yellow}}count:{{/}} %d\n", addr, count)
	return count, nil
}

// PrintOutputs prints the decoded outputs of [result].
func PrintOutputs(result *chain.Result) error {
	for i, output := range result.Outputs {
		obj, err := vm.OutputParser.UnmarshalBytes(output)
		if err != nil {
			return err
		}
		switch o := obj.(type) {
		case *actions.CounterResult:
			utils.Outf("{{cyan}}output %d:{{/}} count=%d\n", i, o.Count)
		case *actions.CloseResult:
			utils.Outf(
				"{{cyan}}output %d:{{/}} refund=%s %s\n",
				i,
				utils.FormatBalance(o.Refund),
				consts.Symbol,
			)
		default:
			utils.Outf("{{cyan}}output %d:{{/}} %+v\n", i, o)
		}
	}
	return nil
}
