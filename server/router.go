// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/gorilla/mux"
)

type router struct {
	lock   sync.RWMutex
	router *mux.Router
	routes set.Set[string]
}

func newRouter() *router {
	return &router{
		router: mux.NewRouter(),
	}
}

func (r *router) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	r.router.ServeHTTP(writer, request)
}

func (r *router) AddRouter(url string, handler http.Handler) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.routes.Contains(url) {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, url)
	}
	r.routes.Add(url)
	r.router.Handle(url, handler)
	return nil
}
