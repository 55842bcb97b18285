// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Processor executes transactions one at a time against persisted state,
// collecting their changes in a [tstate.TState].
type Processor struct {
	tracer    trace.Tracer
	validator AccountValidator
}

func NewProcessor(tracer trace.Tracer, validator AccountValidator) *Processor {
	return &Processor{
		tracer:    tracer,
		validator: validator,
	}
}

// Execute checks [tx] against [r], then runs it against a view of [ts] backed
// by [im]. A successful or reverted transaction is committed to [ts]; an
// error means [tx] could not be processed and [ts] is left untouched.
func (p *Processor) Execute(
	ctx context.Context,
	r Rules,
	im state.Immutable,
	ts *tstate.TState,
	tx *Transaction,
	timestamp int64,
) (*Result, error) {
	ctx, span := p.tracer.Start(
		ctx, "chain.Processor.Execute",
		oteltrace.WithAttributes(
			attribute.Stringer("txID", tx.ID()),
			attribute.Int("actions", len(tx.Actions)),
		),
	)
	defer span.End()

	if err := tx.PreExecute(r, timestamp); err != nil {
		return nil, err
	}
	stateKeys, err := tx.StateKeys()
	if err != nil {
		return nil, err
	}
	storage, err := p.fetch(ctx, im, stateKeys)
	if err != nil {
		return nil, err
	}
	view := ts.NewView(stateKeys, storage)
	result, err := tx.Execute(ctx, r, p.validator, view, timestamp)
	if err != nil {
		return nil, err
	}
	view.Commit()
	span.SetAttributes(attribute.Bool("success", result.Success))
	return result, nil
}

// fetch reads every key in [stateKeys] that exists in [im].
func (p *Processor) fetch(ctx context.Context, im state.Immutable, stateKeys state.Keys) (map[string][]byte, error) {
	_, span := p.tracer.Start(ctx, "chain.Processor.fetch")
	defer span.End()

	storage := make(map[string][]byte, len(stateKeys))
	for k := range stateKeys {
		v, err := im.GetValue(ctx, []byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		storage[k] = v
	}
	return storage, nil
}
