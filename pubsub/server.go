// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"net/http"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type ServerConfig struct {
	// Size of the ws read buffer
	ReadBufferSize int
	// Size of the ws write buffer
	WriteBufferSize int
	// Time allowed to write a message to the peer.
	WriteWait time.Duration
	// Time allowed to read the next pong message from the peer.
	PongWait time.Duration
	// Send pings to peer with this period. Must be less than pongWait.
	PingPeriod time.Duration
	// Maximum message size in bytes allowed from peer.
	MaxReadMessageSize int
	// Maximum number of pending messages to send to a peer.
	MaxPendingMessages int
	// Frame type used for published messages.
	MessageType int
}

func NewDefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadBufferSize:     readBufferSize,
		WriteBufferSize:    writeBufferSize,
		WriteWait:          writeWait,
		PongWait:           pongWait,
		PingPeriod:         pingPeriod,
		MaxReadMessageSize: maxReadMessageSize,
		MaxPendingMessages: maxPendingMessages,
		MessageType:        websocket.BinaryMessage,
	}
}

// Server maintains the set of active subscribers and fans messages out to
// them. It is an [http.Handler] and is mounted on an existing HTTP server.
type Server struct {
	log      logging.Logger
	config   *ServerConfig
	callback Callback
	upgrader websocket.Upgrader

	conns *Connections
}

// New returns a new Server instance. [callback] is called for every message a
// subscriber sends, if not nil.
func New(log logging.Logger, config *ServerConfig, callback Callback) *Server {
	return &Server{
		log:      log,
		config:   config,
		callback: callback,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		conns: NewConnections(),
	}
}

// ServeHTTP upgrades the request to a websocket connection and starts its
// read and write pumps.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("failed to upgrade",
			zap.Error(err),
		)
		return
	}
	conn := newConnection(s, wsConn)
	s.conns.Add(conn)

	go conn.writePump()
	go conn.readPump()
}

// Connections returns every active subscriber of [s].
func (s *Server) Connections() *Connections {
	return s.conns
}

// Publish sends [msg] to every connection in [toConns] and returns the
// connections that are no longer active.
func (s *Server) Publish(msg []byte, toConns *Connections) []*Connection {
	inactive := []*Connection{}
	for _, conn := range toConns.Conns() {
		if !s.conns.Has(conn) {
			inactive = append(inactive, conn)
			continue
		}
		if !conn.Send(msg) {
			s.log.Verbo(
				"dropping message to subscribed connection due to too many pending messages",
			)
		}
	}
	return inactive
}

// Broadcast sends [msg] to every active subscriber.
func (s *Server) Broadcast(msg []byte) {
	_ = s.Publish(msg, s.conns)
}

func (s *Server) removeConnection(conn *Connection) {
	s.conns.Remove(conn)
}

// Close disconnects every subscriber.
func (s *Server) Close() {
	for _, conn := range s.conns.Conns() {
		s.removeConnection(conn)
		conn.deactivate()
	}
}
