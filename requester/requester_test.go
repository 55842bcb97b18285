// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package requester

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/rpc/v2"
	"github.com/stretchr/testify/require"
)

type EchoArgs struct {
	Message string `json:"message"`
}

type EchoReply struct {
	Message string `json:"message"`
}

type echoService struct{}

func (echoService) Echo(_ *http.Request, args *EchoArgs, reply *EchoReply) error {
	reply.Message = args.Message
	return nil
}

func TestSendRequest(t *testing.T) {
	require := require.New(t)

	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	require.NoError(server.RegisterService(echoService{}, "echo"))
	web := httptest.NewServer(server)
	defer web.Close()

	r := New(web.URL, "echo")
	reply := new(EchoReply)
	require.NoError(r.SendRequest(context.Background(), "echo", &EchoArgs{Message: "count"}, reply))
	require.Equal("count", reply.Message)

	require.Error(r.SendRequest(context.Background(), "missing", &EchoArgs{}, reply))
}
