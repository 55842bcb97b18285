// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workload

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/storage"
)

func Ping(ctx context.Context, require *require.Assertions, uris []string) {
	for _, uri := range uris {
		client := rpc.NewJSONRPCClient(uri)
		ok, err := client.Ping(ctx)
		require.NoError(err)
		require.True(ok)
	}
}

func GetNetwork(ctx context.Context, require *require.Assertions, uris []string, expectedNetworkID uint32, expectedChainID ids.ID) {
	for _, uri := range uris {
		client := rpc.NewJSONRPCClient(uri)
		networkID, chainID, err := client.Network(ctx)
		require.NoError(err)
		require.Equal(expectedNetworkID, networkID)
		require.Equal(expectedChainID, chainID)
	}
}

func GetGenesis(ctx context.Context, require *require.Assertions, uris []string, expectedAllocations int) {
	for _, uri := range uris {
		client := rpc.NewJSONRPCClient(uri)
		g, err := client.Genesis(ctx)
		require.NoError(err)
		require.Equal(consts.HRP, g.HRP)
		require.Len(g.CustomAllocation, expectedAllocations)
	}
}

// GetRent checks that every node charges the same deposit for a counter
// record.
func GetRent(ctx context.Context, require *require.Assertions, uris []string, expectedRent uint64) {
	for _, uri := range uris {
		client := rpc.NewJSONRPCClient(uri)
		rent, err := client.Rent(ctx, storage.CounterSpace)
		require.NoError(err)
		require.Equal(expectedRent, rent)
	}
}
