// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
)

var (
	ActionParser *codec.TypeParser[chain.Action]
	AuthParser   *codec.TypeParser[chain.Auth]
	OutputParser *codec.TypeParser[chain.Object]
)

// Setup types
func init() {
	ActionParser = codec.NewTypeParser[chain.Action]()
	AuthParser = codec.NewTypeParser[chain.Auth]()
	OutputParser = codec.NewTypeParser[chain.Object]()

	errs := &wrappers.Errs{}
	errs.Add(
		ActionParser.Register(&actions.Initialize{}, actions.UnmarshalInitialize),
		ActionParser.Register(&actions.Increment{}, actions.UnmarshalIncrement),
		ActionParser.Register(&actions.Decrement{}, actions.UnmarshalDecrement),
		ActionParser.Register(&actions.Set{}, actions.UnmarshalSet),
		ActionParser.Register(&actions.Close{}, actions.UnmarshalClose),

		AuthParser.Register(&auth.ED25519{}, auth.UnmarshalED25519),

		OutputParser.Register(&actions.CounterResult{}, actions.UnmarshalCounterResult),
		OutputParser.Register(&actions.CloseResult{}, actions.UnmarshalCloseResult),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}

var _ chain.Parser = (*Parser)(nil)

// Parser decodes the transactions and outputs of a single chain.
type Parser struct {
	rules chain.Rules
}

func NewParser(rules chain.Rules) *Parser {
	return &Parser{rules: rules}
}

func (p *Parser) Rules() chain.Rules {
	return p.rules
}

func (*Parser) ActionRegistry() *codec.TypeParser[chain.Action] {
	return ActionParser
}

func (*Parser) AuthRegistry() *codec.TypeParser[chain.Auth] {
	return AuthParser
}

func (*Parser) OutputRegistry() *codec.TypeParser[chain.Object] {
	return OutputParser
}
