// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"

	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/rpc/v2"
)

var jsonContentTypes = []string{
	"application/json",
	"application/json;charset=UTF-8",
}

// NewJSONRPCHandler serves the exported methods of [service] as JSON-RPC
// methods named "[name].method".
func NewJSONRPCHandler(name string, service any) (http.Handler, error) {
	server := rpc.NewServer()
	codec := json.NewCodec()
	for _, contentType := range jsonContentTypes {
		server.RegisterCodec(codec, contentType)
	}
	if err := server.RegisterService(service, name); err != nil {
		return nil, err
	}
	return server, nil
}
