// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workload

import (
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/rpc"
)

// TestSubscriber collects the transactions published on a node's result
// stream.
type TestSubscriber struct {
	client *rpc.WebSocketClient
	msgs   chan *rpc.TxMessage
	errs   chan error
}

func NewTestSubscriber(uri string) (*TestSubscriber, error) {
	client, err := rpc.NewWebSocketClient(uri)
	if err != nil {
		return nil, err
	}
	s := &TestSubscriber{
		client: client,
		msgs:   make(chan *rpc.TxMessage, 128),
		errs:   make(chan error, 1),
	}
	go s.listen()
	return s, nil
}

func (s *TestSubscriber) listen() {
	for {
		msg, err := s.client.Listen()
		if err != nil {
			s.errs <- err
			close(s.msgs)
			return
		}
		s.msgs <- msg
	}
}

// Expect waits for the result of [txID], skipping any other transaction.
func (s *TestSubscriber) Expect(require *require.Assertions, txID ids.ID, success bool, timeout time.Duration) *rpc.TxMessage {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case msg, ok := <-s.msgs:
			if !ok {
				require.FailNow("stream closed", (<-s.errs).Error())
			}
			if msg.TxID != txID {
				continue
			}
			require.Equal(success, msg.Success)
			return msg
		case <-timer.C:
			require.FailNow("timed out waiting for tx", txID.String())
			return nil
		}
	}
}

func (s *TestSubscriber) Close() error {
	return s.client.Close()
}
