// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Callback is invoked for every message a peer sends to the server.
type Callback func([]byte, *Connection)

// Connection is a single websocket subscriber.
type Connection struct {
	s *Server

	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan []byte

	// Guards [send] against a close racing with [Send].
	l      sync.RWMutex
	active atomic.Bool
}

func newConnection(s *Server, conn *websocket.Conn) *Connection {
	c := &Connection{
		s:    s,
		conn: conn,
		send: make(chan []byte, s.config.MaxPendingMessages),
	}
	c.active.Store(true)
	return c
}

func (c *Connection) isActive() bool {
	return c.active.Load()
}

func (c *Connection) deactivate() {
	c.l.Lock()
	defer c.l.Unlock()

	if c.active.CompareAndSwap(true, false) {
		close(c.send)
	}
}

// Send queues [msg] for delivery and returns whether it was queued. A message
// is dropped if the peer has too many pending messages.
func (c *Connection) Send(msg []byte) bool {
	c.l.RLock()
	defer c.l.RUnlock()

	if !c.isActive() {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// readPump pumps messages from the websocket connection to the callback.
//
// There is at most one reader on a connection.
func (c *Connection) readPump() {
	defer func() {
		c.s.removeConnection(c)
		c.deactivate()

		// close is called by both the writePump and the readPump so one of them
		// will always error
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(int64(c.s.config.MaxReadMessageSize))
	// SetReadDeadline returns an error if the connection is corrupted
	if err := c.conn.SetReadDeadline(time.Now().Add(c.s.config.PongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.s.config.PongWait))
	})
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				c.s.log.Debug("unexpected close in websockets",
					zap.Error(err),
				)
			}
			return
		}
		if c.s.callback != nil {
			c.s.callback(msg, c)
		}
	}
}

// writePump pumps queued messages to the websocket connection.
//
// There is at most one writer on a connection.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.s.config.PingPeriod)
	defer func() {
		c.s.removeConnection(c)
		c.deactivate()
		ticker.Stop()

		// close is called by both the writePump and the readPump so one of them
		// will always error
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.s.config.WriteWait)); err != nil {
				c.s.log.Debug("closing the connection",
					zap.String("reason", "failed to set the write deadline"),
					zap.Error(err),
				)
				return
			}
			if !ok {
				// The server closed the channel. Attempt to close the connection
				// gracefully.
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(c.s.config.MessageType, message); err != nil {
				c.s.log.Debug("closing the connection",
					zap.String("reason", "failed to write message"),
					zap.Error(err),
				)
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.s.config.WriteWait)); err != nil {
				c.s.log.Debug("closing the connection",
					zap.String("reason", "failed to set the write deadline"),
					zap.Error(err),
				)
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
