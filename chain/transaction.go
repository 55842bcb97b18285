// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/emap"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/tstate"
	"github.com/ava-labs/countervm/utils"
)

var _ emap.Item = (*Transaction)(nil)

type Transaction struct {
	Base *Base `json:"base"`

	Actions []Action `json:"actions"`
	Auth    Auth     `json:"auth"`

	bytes     []byte
	size      int
	id        ids.ID
	stateKeys state.Keys
}

func NewTx(base *Base, actions []Action) *Transaction {
	return &Transaction{
		Base:    base,
		Actions: actions,
	}
}

// Digest returns the bytes covered by the transaction signature.
func (t *Transaction) Digest() ([]byte, error) {
	size := t.Base.Size() + consts.ByteLen
	for _, action := range t.Actions {
		size += consts.ByteLen + action.Size()
	}
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	t.Base.Marshal(p)
	if err := t.marshalActions(p); err != nil {
		return nil, err
	}
	return p.Bytes(), p.Err()
}

func (t *Transaction) Sign(factory AuthFactory, parser Parser) (*Transaction, error) {
	msg, err := t.Digest()
	if err != nil {
		return nil, err
	}
	auth, err := factory.Sign(msg)
	if err != nil {
		return nil, err
	}
	t.Auth = auth

	// Ensure transaction is fully initialized and correct by reloading it from
	// bytes
	size := len(msg) + consts.ByteLen + t.Auth.Size()
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	if err := t.Marshal(p); err != nil {
		return nil, err
	}
	p = codec.NewReader(p.Bytes(), consts.NetworkSizeLimit)
	return UnmarshalTx(p, parser)
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) Size() int { return t.size }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Expiry() int64 { return t.Base.Timestamp }

// StateKeys returns the union of the state keys declared by every action.
func (t *Transaction) StateKeys() (state.Keys, error) {
	if t.stateKeys != nil {
		return t.stateKeys, nil
	}
	stateKeys := make(state.Keys)
	actor := t.Auth.Actor()
	for _, action := range t.Actions {
		for k, v := range action.StateKeys(actor) {
			if !stateKeys.Add(k, v) {
				return nil, ErrInvalidKeyValue
			}
		}
	}
	t.stateKeys = stateKeys
	return stateKeys, nil
}

// PreExecute performs the checks that do not require state.
func (t *Transaction) PreExecute(r Rules, timestamp int64) error {
	if err := t.Base.Execute(r.GetChainID(), r, timestamp); err != nil {
		return err
	}
	if len(t.Actions) > int(r.GetMaxActionsPerTx()) {
		return ErrTooManyActions
	}
	return nil
}

// Execute runs every action against [ts]. Before each action, its account
// requirements are checked with [validator].
//
// If a requirement is not met or an action fails, every change made by the
// transaction is reverted and an unsuccessful [Result] is returned. The error
// is only non-nil if the transaction could not be processed at all.
func (t *Transaction) Execute(
	ctx context.Context,
	r Rules,
	validator AccountValidator,
	ts *tstate.TStateView,
	timestamp int64,
) (*Result, error) {
	if validator == nil {
		return nil, ErrMissingValidator
	}

	start := ts.OpIndex()
	handleRevert := func(rerr error) (*Result, error) {
		ts.Rollback(ctx, start)
		return &Result{
			Success: false,
			Error:   utils.ErrBytes(rerr),
		}, nil
	}

	actor := t.Auth.Actor()
	outputs := make([][]byte, 0, len(t.Actions))
	for i, action := range t.Actions {
		for _, req := range action.Accounts(actor) {
			if err := validator.ValidateAccount(ctx, ts, req); err != nil {
				return handleRevert(err)
			}
		}
		actionID := t.id.Prefix(uint64(i))
		output, err := action.Execute(ctx, r, ts, timestamp, actor, actionID)
		if err != nil {
			return handleRevert(err)
		}
		if output == nil {
			// Enforce object standardization (this is a VM bug and we should fail
			// fast)
			return handleRevert(ErrInvalidObject)
		}
		outputs = append(outputs, MarshalObject(output))
	}
	return &Result{
		Success: true,
		Outputs: outputs,
	}, nil
}

func (t *Transaction) Marshal(p *codec.Packer) error {
	if len(t.bytes) > 0 {
		p.PackFixedBytes(t.bytes)
		return p.Err()
	}

	t.Base.Marshal(p)
	if err := t.marshalActions(p); err != nil {
		return err
	}
	p.PackByte(t.Auth.GetTypeID())
	t.Auth.Marshal(p)
	return p.Err()
}

func (t *Transaction) marshalActions(p *codec.Packer) error {
	if len(t.Actions) == 0 {
		return ErrNoActions
	}
	if len(t.Actions) > int(consts.MaxUint8) {
		return ErrTooManyActions
	}
	p.PackByte(uint8(len(t.Actions)))
	for _, action := range t.Actions {
		p.PackByte(action.GetTypeID())
		action.Marshal(p)
	}
	return p.Err()
}

// UnmarshalTx parses a single transaction from [p] using the registries of
// [parser].
func UnmarshalTx(p *codec.Packer, parser Parser) (*Transaction, error) {
	start := p.Offset()
	base, err := UnmarshalBase(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal base", err)
	}
	actions, err := unmarshalActions(p, parser.ActionRegistry())
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal actions", err)
	}
	authType := p.UnpackByte()
	unmarshalAuth, ok := parser.AuthRegistry().LookupIndex(authType)
	if !ok {
		return nil, fmt.Errorf("%w: %d is unknown auth type", ErrInvalidObject, authType)
	}
	auth, err := unmarshalAuth(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal auth", err)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}

	var tx Transaction
	tx.Base = base
	tx.Actions = actions
	tx.Auth = auth
	codecBytes := p.Bytes()
	tx.bytes = codecBytes[start:p.Offset()] // ensure errors handled before grabbing memory
	tx.size = len(tx.bytes)
	tx.id = utils.ToID(tx.bytes)
	return &tx, nil
}

// ParseTx parses [b] and requires that it holds exactly one transaction.
func ParseTx(b []byte, parser Parser) (*Transaction, error) {
	p := codec.NewReader(b, consts.NetworkSizeLimit)
	tx, err := UnmarshalTx(p, parser)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: remaining=%d", ErrInvalidObject, len(b)-p.Offset())
	}
	return tx, nil
}

func unmarshalActions(p *codec.Packer, actionRegistry *codec.TypeParser[Action]) ([]Action, error) {
	actionCount := p.UnpackByte()
	if actionCount == 0 {
		return nil, ErrNoActions
	}
	actions := make([]Action, 0, actionCount)
	for i := uint8(0); i < actionCount; i++ {
		action, err := actionRegistry.Unmarshal(p)
		if err != nil {
			return nil, fmt.Errorf("%w: could not unmarshal action %d", err, i)
		}
		actions = append(actions, action)
	}
	return actions, p.Err()
}

// MarshalObject encodes [o] prefixed with its type ID.
func MarshalObject(o Object) []byte {
	p := codec.NewWriter(consts.ByteLen+o.Size(), consts.NetworkSizeLimit)
	p.PackByte(o.GetTypeID())
	o.Marshal(p)
	return p.Bytes()
}
