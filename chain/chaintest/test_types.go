// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
)

const (
	TestActionTypeID uint8 = 0
	TestAuthTypeID   uint8 = 0
	TestOutputTypeID uint8 = 0
)

var (
	ErrTestActionExecute = errors.New("test action execution error")
	ErrTestAuthVerify    = errors.New("test auth verification error")

	_ chain.Action = (*TestAction)(nil)
	_ chain.Auth   = (*TestAuth)(nil)
	_ chain.Object = (*TestOutput)(nil)
	_ chain.Parser = (*Parser)(nil)
	_ chain.Rules  = (*Rules)(nil)
)

// TestAction writes [Value] to [Key] and fails after writing if [ShouldErr]
// is set.
type TestAction struct {
	Key       []byte
	Value     []byte
	ShouldErr bool
	Requires  []chain.AccountRequirement
}

// NewTestKey returns a chunk-suffixed state key for [name].
func NewTestKey(name string) []byte {
	return keys.EncodeChunks([]byte(name), 1)
}

func (*TestAction) GetTypeID() uint8 {
	return TestActionTypeID
}

func (t *TestAction) StateKeys(codec.Address) state.Keys {
	return state.Keys{string(t.Key): state.All}
}

func (t *TestAction) Accounts(codec.Address) []chain.AccountRequirement {
	return t.Requires
}

func (t *TestAction) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	_ codec.Address,
	_ ids.ID,
) (chain.Object, error) {
	if err := mu.Insert(ctx, t.Key, t.Value); err != nil {
		return nil, err
	}
	if t.ShouldErr {
		return nil, ErrTestActionExecute
	}
	return &TestOutput{Value: t.Value}, nil
}

func (t *TestAction) Size() int {
	return codec.BytesLen(t.Key) + codec.BytesLen(t.Value) + consts.BoolLen +
		consts.ByteLen + len(t.Requires)*(codec.AddressLen+consts.ByteLen)
}

func (t *TestAction) Marshal(p *codec.Packer) {
	p.PackBytes(t.Key)
	p.PackBytes(t.Value)
	p.PackBool(t.ShouldErr)
	p.PackByte(uint8(len(t.Requires)))
	for _, req := range t.Requires {
		p.PackAddress(req.Address)
		p.PackByte(uint8(req.State))
	}
}

func UnmarshalTestAction(p *codec.Packer) (chain.Action, error) {
	var t TestAction
	p.UnpackBytes(consts.NetworkSizeLimit, true, &t.Key)
	p.UnpackBytes(consts.NetworkSizeLimit, false, &t.Value)
	t.ShouldErr = p.UnpackBool()
	if count := p.UnpackByte(); count > 0 {
		t.Requires = make([]chain.AccountRequirement, count)
		for i := range t.Requires {
			p.UnpackAddress(&t.Requires[i].Address)
			t.Requires[i].State = chain.AccountState(p.UnpackByte())
		}
	}
	return &t, p.Err()
}

type TestOutput struct {
	Value []byte
}

func (*TestOutput) GetTypeID() uint8 {
	return TestOutputTypeID
}

func (t *TestOutput) Size() int {
	return codec.BytesLen(t.Value)
}

func (t *TestOutput) Marshal(p *codec.Packer) {
	p.PackBytes(t.Value)
}

func UnmarshalTestOutput(p *codec.Packer) (chain.Object, error) {
	var t TestOutput
	p.UnpackBytes(consts.NetworkSizeLimit, false, &t.Value)
	return &t, p.Err()
}

// TestAuth is an auth whose signature check is decided by [ShouldErr].
type TestAuth struct {
	ActorAddress codec.Address
	ShouldErr    bool
}

func (*TestAuth) GetTypeID() uint8 {
	return TestAuthTypeID
}

func (t *TestAuth) Actor() codec.Address {
	return t.ActorAddress
}

func (t *TestAuth) Verify(context.Context, []byte) error {
	if t.ShouldErr {
		return ErrTestAuthVerify
	}
	return nil
}

func (*TestAuth) Size() int {
	return codec.AddressLen + consts.BoolLen
}

func (t *TestAuth) Marshal(p *codec.Packer) {
	p.PackAddress(t.ActorAddress)
	p.PackBool(t.ShouldErr)
}

func UnmarshalTestAuth(p *codec.Packer) (chain.Auth, error) {
	var t TestAuth
	p.UnpackAddress(&t.ActorAddress)
	t.ShouldErr = p.UnpackBool()
	return &t, p.Err()
}

// TestAuthFactory signs with a [TestAuth] for [ActorAddress].
type TestAuthFactory struct {
	ActorAddress codec.Address
	ShouldErr    bool
}

func (f *TestAuthFactory) Sign([]byte) (chain.Auth, error) {
	return &TestAuth{ActorAddress: f.ActorAddress, ShouldErr: f.ShouldErr}, nil
}

func (f *TestAuthFactory) Address() codec.Address {
	return f.ActorAddress
}

type Rules struct {
	NetworkID              uint32
	ChainID                ids.ID
	ValidityWindow         int64
	MaxActionsPerTx        uint8
	AccountStorageOverhead uint64
	LamportsPerByteYear    uint64
	ExemptionThreshold     uint64
}

// NewDefaultRules returns rules matching the default genesis.
func NewDefaultRules() *Rules {
	return &Rules{
		NetworkID:              1,
		ChainID:                ids.Empty.Prefix(1),
		ValidityWindow:         60_000,
		MaxActionsPerTx:        16,
		AccountStorageOverhead: 128,
		LamportsPerByteYear:    3480,
		ExemptionThreshold:     2,
	}
}

func (r *Rules) GetNetworkID() uint32              { return r.NetworkID }
func (r *Rules) GetChainID() ids.ID                { return r.ChainID }
func (r *Rules) GetValidityWindow() int64          { return r.ValidityWindow }
func (r *Rules) GetMaxActionsPerTx() uint8         { return r.MaxActionsPerTx }
func (r *Rules) GetAccountStorageOverhead() uint64 { return r.AccountStorageOverhead }
func (r *Rules) GetLamportsPerByteYear() uint64    { return r.LamportsPerByteYear }
func (r *Rules) GetExemptionThreshold() uint64     { return r.ExemptionThreshold }

type Parser struct {
	rules          chain.Rules
	actionRegistry *codec.TypeParser[chain.Action]
	authRegistry   *codec.TypeParser[chain.Auth]
	outputRegistry *codec.TypeParser[chain.Object]
}

// NewParser returns a parser with the test types registered.
func NewParser(rules chain.Rules) *Parser {
	p := &Parser{
		rules:          rules,
		actionRegistry: codec.NewTypeParser[chain.Action](),
		authRegistry:   codec.NewTypeParser[chain.Auth](),
		outputRegistry: codec.NewTypeParser[chain.Object](),
	}
	if err := errors.Join(
		p.actionRegistry.Register(&TestAction{}, UnmarshalTestAction),
		p.authRegistry.Register(&TestAuth{}, UnmarshalTestAuth),
		p.outputRegistry.Register(&TestOutput{}, UnmarshalTestOutput),
	); err != nil {
		panic(err)
	}
	return p
}

func (p *Parser) Rules() chain.Rules {
	return p.rules
}

func (p *Parser) ActionRegistry() *codec.TypeParser[chain.Action] {
	return p.actionRegistry
}

func (p *Parser) AuthRegistry() *codec.TypeParser[chain.Auth] {
	return p.authRegistry
}

func (p *Parser) OutputRegistry() *codec.TypeParser[chain.Object] {
	return p.outputRegistry
}
