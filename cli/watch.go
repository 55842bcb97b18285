// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/utils"
)

// Watch prints every transaction the node executes until [ctx] is done or
// the stream fails.
func (h *Handler) Watch(ctx context.Context) error {
	if len(h.settings.URI) == 0 {
		return ErrNoURI
	}
	scli, err := rpc.NewWebSocketClient(h.settings.URI)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		_ = scli.Close()
	}()
	defer scli.Close()

	utils.Outf("{{green}}watching for executed transactions on %s{{/}}\n", h.settings.URI)
	for {
		msg, err := scli.Listen()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if msg.Rejected {
			continue
		}
		PrintStatus(msg.TxID.String(), msg.Success)
		if !msg.Success {
			utils.Outf("{{red}}error:{{/}} %s\n", msg.Error)
			continue
		}
		if err := PrintOutputs(&chain.Result{Success: true, Outputs: msg.Outputs}); err != nil {
			return err
		}
	}
}
