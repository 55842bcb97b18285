// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workload

import (
	"context"
	"encoding/json"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/vm"
)

// InitialBalance is credited to every key of a test network at genesis.
const InitialBalance uint64 = 10_000_000_000

type TestNetwork interface {
	SubmitTxs(context.Context, []*chain.Transaction) ([]*chain.Result, []error)
	GenerateTx(context.Context, []chain.Action, chain.AuthFactory) (*chain.Transaction, error)
	URIs() []string
	Configuration() TestNetworkConfiguration
}

// TestNetworkConfiguration stores what a test needs to know about a network
// before it is started.
type TestNetworkConfiguration interface {
	GenesisBytes() []byte
	Name() string
	Parser() chain.Parser
	AuthFactories() []chain.AuthFactory
}

type DefaultTestNetworkConfiguration struct {
	genesisBytes  []byte
	name          string
	parser        chain.Parser
	authFactories []chain.AuthFactory
}

func (d DefaultTestNetworkConfiguration) GenesisBytes() []byte {
	return d.genesisBytes
}

func (d DefaultTestNetworkConfiguration) Name() string {
	return d.name
}

func (d DefaultTestNetworkConfiguration) Parser() chain.Parser {
	return d.parser
}

func (d DefaultTestNetworkConfiguration) AuthFactories() []chain.AuthFactory {
	return d.authFactories
}

// NewTestNetworkConfig creates [numKeys] ed25519 keys and a genesis that funds
// each of them with [InitialBalance].
func NewTestNetworkConfig(name string, numKeys int) (DefaultTestNetworkConfiguration, error) {
	g := genesis.Default()
	factories := make([]chain.AuthFactory, 0, numKeys)
	for i := 0; i < numKeys; i++ {
		priv, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return DefaultTestNetworkConfiguration{}, err
		}
		factory := auth.NewED25519Factory(priv)
		factories = append(factories, factory)
		g.CustomAllocation = append(g.CustomAllocation, &genesis.CustomAllocation{
			Address: codec.MustAddressBech32(consts.HRP, factory.Address()),
			Balance: InitialBalance,
		})
	}
	genesisBytes, err := json.Marshal(g)
	if err != nil {
		return DefaultTestNetworkConfiguration{}, err
	}
	return DefaultTestNetworkConfiguration{
		genesisBytes:  genesisBytes,
		name:          name,
		parser:        vm.NewParser(g.Rules(genesis.ChainID(genesisBytes))),
		authFactories: factories,
	}, nil
}
