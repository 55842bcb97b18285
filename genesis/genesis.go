// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/utils"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

type CustomAllocation struct {
	Address string `json:"address"` // bech32 address
	Balance uint64 `json:"balance"`
}

type Genesis struct {
	// Address prefix
	HRP string `json:"hrp"`

	NetworkID uint32 `json:"networkID"`

	// Tx Parameters
	ValidityWindow  int64 `json:"validityWindow"` // ms
	MaxActionsPerTx uint8 `json:"maxActionsPerTx"`

	// Rent Parameters
	AccountStorageOverhead uint64 `json:"accountStorageOverhead"` // bytes
	LamportsPerByteYear    uint64 `json:"lamportsPerByteYear"`
	ExemptionThreshold     uint64 `json:"exemptionThreshold"` // years

	// Allocations
	CustomAllocation []*CustomAllocation `json:"customAllocation"`
}

func Default() *Genesis {
	return &Genesis{
		HRP: consts.HRP,

		NetworkID: 1337,

		// Tx Parameters
		ValidityWindow:  60 * consts.MillisecondsPerSecond, // ms
		MaxActionsPerTx: 16,

		// Rent Parameters
		AccountStorageOverhead: 128,
		LamportsPerByteYear:    3_480,
		ExemptionThreshold:     2,
	}
}

// New parses [b] on top of the default genesis.
func New(b []byte) (*Genesis, error) {
	g := Default()
	if len(b) > 0 {
		if err := json.Unmarshal(b, g); err != nil {
			return nil, fmt.Errorf("failed to unmarshal genesis %s: %w", string(b), err)
		}
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Genesis) Verify() error {
	if g.HRP != consts.HRP {
		return fmt.Errorf("%w: %s", ErrInvalidHRP, g.HRP)
	}
	if g.ValidityWindow <= 0 || g.ValidityWindow%consts.MillisecondsPerSecond != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidValidityWindow, g.ValidityWindow)
	}
	if g.MaxActionsPerTx == 0 {
		return ErrInvalidMaxActions
	}
	if g.LamportsPerByteYear == 0 || g.ExemptionThreshold == 0 {
		return ErrInvalidRent
	}
	if _, err := storage.RentFromRules(g.Rules(ids.Empty)).MinimumBalance(storage.CounterSpace); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRent, err)
	}
	return nil
}

// ChainID is the hash of the genesis bytes the chain was started with.
func ChainID(b []byte) ids.ID {
	return utils.ToID(b)
}

// Rules returns the rules of the chain identified by [chainID].
func (g *Genesis) Rules(chainID ids.ID) *Rules {
	return NewRules(g, chainID)
}

// StateKeys returns the keys written by [Load].
func (g *Genesis) StateKeys() (state.Keys, error) {
	stateKeys := make(state.Keys, len(g.CustomAllocation))
	for _, alloc := range g.CustomAllocation {
		addr, err := codec.ParseAddressBech32(g.HRP, alloc.Address)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, alloc.Address)
		}
		stateKeys.Add(string(storage.BalanceKey(addr)), state.All)
	}
	return stateKeys, nil
}

// Load credits every custom allocation to [mu].
func (g *Genesis) Load(ctx context.Context, tracer trace.Tracer, mu state.Mutable) error {
	ctx, span := tracer.Start(ctx, "Genesis.Load")
	defer span.End()

	supply := uint64(0)
	for _, alloc := range g.CustomAllocation {
		addr, err := codec.ParseAddressBech32(g.HRP, alloc.Address)
		if err != nil {
			return fmt.Errorf("%w: %s", err, alloc.Address)
		}
		supply, err = smath.Add(supply, alloc.Balance)
		if err != nil {
			return err
		}
		if _, err := storage.AddBalance(ctx, mu, addr, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	span.SetAttributes(
		attribute.Int("allocations", len(g.CustomAllocation)),
		attribute.Int64("supply", int64(supply)),
	)
	return nil
}
