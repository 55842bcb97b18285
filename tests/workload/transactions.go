// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workload

import (
	"context"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/rpc"
)

type TxAssertion func(ctx context.Context, require *require.Assertions, uri string)

type TxGenerator interface {
	// GenerateTx generates a new transaction and an assertion function that
	// confirms the transaction had the expected effect
	GenerateTx(context.Context, string) (*chain.Transaction, TxAssertion, error)
}

type TxWorkload struct {
	Generator TxGenerator
}

// GenerateTxs submits [numTxs] transactions through the first uri and
// confirms each of them against every uri.
func (w *TxWorkload) GenerateTxs(ctx context.Context, require *require.Assertions, numTxs int, uris []string) {
	submitClient := rpc.NewJSONRPCClient(uris[0])

	for i := 0; i < numTxs; i++ {
		tx, confirm, err := w.Generator.GenerateTx(ctx, uris[0])
		require.NoError(err)

		_, _, err = submitClient.SubmitTx(ctx, tx.Bytes())
		require.NoError(err, "failed to submit tx %d", i)

		for _, uri := range uris {
			confirm(ctx, require, uri)
		}
	}
}
