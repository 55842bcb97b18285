// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net"
	"net/http"
	"strings"

	"github.com/ava-labs/avalanchego/utils/set"
)

const wildcard = "*"

// filterInvalidHosts rejects requests whose Host header is not in
// [allowedHosts]. IP addresses are always allowed.
func filterInvalidHosts(
	handler http.Handler,
	allowedHosts []string,
) http.Handler {
	s := set.Set[string]{}
	for _, host := range allowedHosts {
		if host == wildcard {
			return handler
		}
		s.Add(strings.ToLower(host))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Host == "" {
			handler.ServeHTTP(w, r)
			return
		}
		host, _, err := net.SplitHostPort(r.Host)
		if err != nil {
			// no port in the host
			host = r.Host
		}
		if net.ParseIP(host) != nil || s.Contains(strings.ToLower(host)) {
			handler.ServeHTTP(w, r)
			return
		}
		http.Error(w, "invalid host specified", http.StatusForbidden)
	})
}
