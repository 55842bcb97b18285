// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/neilotoole/errgroup"
)

// VerifyAuth verifies the auth of every transaction in [txs] using at most
// [cores] goroutines. Auth types with an engine in [engines] are batch
// verified, all others are verified one by one.
//
// A batch failure does not identify the offending transaction.
func VerifyAuth(ctx context.Context, engines map[uint8]AuthEngine, txs []*Transaction, cores int) error {
	if cores < 1 {
		cores = 1
	}
	g, gctx := errgroup.WithContextN(ctx, cores, len(txs))

	counts := make(map[uint8]int)
	for _, tx := range txs {
		counts[tx.Auth.GetTypeID()]++
	}
	bvs := make(map[uint8]AuthBatchVerifier, len(counts))
	for typeID, count := range counts {
		engine, ok := engines[typeID]
		if !ok {
			continue
		}
		bvs[typeID] = engine.GetBatchVerifier(cores, count)
	}

	for _, tx := range txs {
		msg, err := tx.Digest()
		if err != nil {
			return err
		}
		if bv, ok := bvs[tx.Auth.GetTypeID()]; ok {
			if verify := bv.Add(msg, tx.Auth); verify != nil {
				g.Go(verify)
			}
			continue
		}
		auth := tx.Auth
		g.Go(func() error {
			return auth.Verify(gctx, msg)
		})
	}
	for _, bv := range bvs {
		for _, verify := range bv.Done() {
			g.Go(verify)
		}
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}
	return nil
}
