// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import "time"

const (
	Name              = "countervm"
	JSONRPCEndpoint   = "/countervm"
	WebSocketEndpoint = "/countervm/ws"

	waitSleep = 500 * time.Millisecond
)
