// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/json"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/pubsub"
	"github.com/ava-labs/countervm/vm"
)

var _ vm.Listener = (*WebSocketServer)(nil)

// TxMessage is published for every executed transaction. It is also sent back
// to a subscriber that submitted a transaction that was rejected before
// execution.
type TxMessage struct {
	TxID      ids.ID   `json:"txId"`
	Timestamp int64    `json:"timestamp"`
	Success   bool     `json:"success"`
	Rejected  bool     `json:"rejected,omitempty"`
	Error     string   `json:"error,omitempty"`
	Outputs   [][]byte `json:"outputs"`
}

func NewTxMessage(txID ids.ID, timestamp int64, result *chain.Result) *TxMessage {
	return &TxMessage{
		TxID:      txID,
		Timestamp: timestamp,
		Success:   result.Success,
		Error:     string(result.Error),
		Outputs:   result.Outputs,
	}
}

// WebSocketServer streams transaction results to subscribers. Subscribers may
// also submit transactions by sending their bytes.
type WebSocketServer struct {
	vm VM
	s  *pubsub.Server
}

func NewWebSocketServer(vm VM, maxPendingMessages int) (*WebSocketServer, *pubsub.Server) {
	w := &WebSocketServer{vm: vm}
	cfg := pubsub.NewDefaultServerConfig()
	cfg.MaxPendingMessages = maxPendingMessages
	cfg.MessageType = websocket.TextMessage
	w.s = pubsub.New(vm.Logger(), cfg, w.MessageCallback())
	return w, w.s
}

func (w *WebSocketServer) MessageCallback() pubsub.Callback {
	log := w.vm.Logger()
	return func(msg []byte, c *pubsub.Connection) {
		ctx, span := w.vm.Tracer().Start(context.Background(), "WebSocketServer.SubmitTx")
		defer span.End()

		tx, err := chain.ParseTx(msg, w.vm.Parser())
		if err != nil {
			log.Debug("failed to unmarshal tx",
				zap.Int("len", len(msg)),
				zap.Error(err),
			)
			return
		}
		txID := tx.ID()
		if _, err := w.vm.SubmitTx(ctx, tx); err != nil {
			log.Debug("failed to submit tx",
				zap.Stringer("txID", txID),
				zap.Error(err),
			)
			b, err := json.Marshal(&TxMessage{
				TxID:     txID,
				Rejected: true,
				Error:    err.Error(),
			})
			if err != nil {
				return
			}
			conns := pubsub.NewConnections()
			conns.Add(c)
			w.s.Publish(b, conns)
		}
		// Executed transactions are reported to every subscriber by [Executed].
	}
}

// Executed publishes the result of [tx] to every subscriber.
func (w *WebSocketServer) Executed(
	_ context.Context,
	tx *chain.Transaction,
	result *chain.Result,
	timestamp int64,
) {
	if w.s.Connections().Len() == 0 {
		return
	}
	b, err := json.Marshal(NewTxMessage(tx.ID(), timestamp, result))
	if err != nil {
		w.vm.Logger().Error("failed to marshal tx message",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return
	}
	w.s.Broadcast(b)
}
