// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ava-labs/countervm/chain"
)

type WebSocketClient struct {
	conn *websocket.Conn
	wl   sync.Mutex
	rl   sync.Mutex
	cl   sync.Once
}

// NewWebSocketClient dials the result stream of the node at [uri].
func NewWebSocketClient(uri string) (*WebSocketClient, error) {
	uri = strings.TrimSuffix(uri, "/")
	uri = strings.Replace(uri, "http", "ws", 1)
	uri += WebSocketEndpoint
	conn, resp, err := websocket.DefaultDialer.Dial(uri, nil)
	if err != nil {
		return nil, err
	}
	// not using resp for now
	_ = resp.Body.Close()
	return &WebSocketClient{conn: conn}, nil
}

// SubmitTx sends [tx] over the stream. Its result arrives through [Listen].
func (c *WebSocketClient) SubmitTx(tx *chain.Transaction) error {
	c.wl.Lock()
	defer c.wl.Unlock()

	return c.conn.WriteMessage(websocket.BinaryMessage, tx.Bytes())
}

// Listen blocks until the next transaction message arrives.
func (c *WebSocketClient) Listen() (*TxMessage, error) {
	c.rl.Lock()
	defer c.rl.Unlock()

	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	var tm TxMessage
	if err := json.Unmarshal(msg, &tm); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMessageInvalid, err)
	}
	return &tm, nil
}

// Close closes [c]'s connection to the server.
func (c *WebSocketClient) Close() error {
	var err error
	c.cl.Do(func() {
		err = c.conn.Close()
	})
	return err
}
