// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/state"
)

type Rules interface {
	// Should almost always be constant (unless there is a fork of
	// a live network)
	GetNetworkID() uint32
	GetChainID() ids.ID

	GetValidityWindow() int64 // in milliseconds
	GetMaxActionsPerTx() uint8

	// Rent parameters. An account holding [space] bytes must be funded with
	// (overhead + space) * lamportsPerByteYear * exemptionThreshold.
	GetAccountStorageOverhead() uint64
	GetLamportsPerByteYear() uint64
	GetExemptionThreshold() uint64
}

// Object is anything that can be serialized with a registered type ID.
type Object interface {
	codec.Typed

	// Size is the number of bytes it takes to represent this [Object]. This
	// does not include the type ID.
	Size() int

	// Marshal encodes an [Object] as bytes.
	Marshal(p *codec.Packer)
}

// AccountState is the state an account must be in for an action to execute.
type AccountState uint8

const (
	// Uninitialized accounts do not exist yet.
	Uninitialized AccountState = iota
	// Active accounts exist and hold a record owned by the program.
	Active
)

func (s AccountState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// AccountRequirement is a precondition on a single account that must hold
// before an action executes.
type AccountRequirement struct {
	Address codec.Address
	State   AccountState
}

// AccountValidator checks account preconditions against state. It is invoked
// by the [Processor] before every action and is kept separate from the action
// logic.
type AccountValidator interface {
	ValidateAccount(ctx context.Context, im state.Immutable, req AccountRequirement) error
}

type Action interface {
	Object

	// StateKeys is a full enumeration of all database keys that could be touched during execution
	// of an [Action]. This is used to prefetch state and to scope the state view the action
	// executes against.
	//
	// All keys specified must be suffixed with the number of chunks that could ever be read from that
	// key (formatted as a big-endian uint16). This is used to automatically calculate storage usage.
	StateKeys(actor codec.Address) state.Keys

	// Accounts enumerates the account preconditions of the action.
	Accounts(actor codec.Address) []AccountRequirement

	// Execute actually runs the [Action]. Any state changes that the [Action] performs should
	// be done here.
	//
	// If any keys are touched during [Execute] that are not specified in [StateKeys], the transaction
	// will revert. If an error is returned, all state changes made by the transaction are reverted.
	Execute(
		ctx context.Context,
		r Rules,
		mu state.Mutable,
		timestamp int64,
		actor codec.Address,
		actionID ids.ID,
	) (Object, error)
}

type Auth interface {
	Object

	// Verify is run concurrently during transaction verification. It may not
	// access state.
	Verify(ctx context.Context, msg []byte) error

	// Actor is the subject of the [Action] signed and pays any deposit the
	// [Action] requires.
	Actor() codec.Address
}

type AuthFactory interface {
	// Sign is used by helpers, auth object should store internally to be ready for marshaling
	Sign(msg []byte) (Auth, error)
	Address() codec.Address
}

type AuthBatchVerifier interface {
	Add([]byte, Auth) func() error
	Done() []func() error
}

type AuthEngine interface {
	GetBatchVerifier(cores int, count int) AuthBatchVerifier
}

type Parser interface {
	Rules() Rules
	ActionRegistry() *codec.TypeParser[Action]
	AuthRegistry() *codec.TypeParser[Auth]
	OutputRegistry() *codec.TypeParser[Object]
}
