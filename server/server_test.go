// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	})
}

func TestServerRoutes(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	srv := New(logging.NoLog{}, listener, NewDefaultHTTPConfig(), []string{"*"}, []string{"*"}, time.Second)
	require.NoError(srv.AddRoute(okHandler("rpc"), "countervm", ""))
	require.NoError(srv.AddRoute(okHandler("ws"), "countervm", "/ws"))
	require.ErrorIs(srv.AddRoute(okHandler("again"), "countervm", ""), ErrDuplicateRoute)

	done := make(chan error, 1)
	go func() {
		done <- srv.Dispatch()
	}()

	base := "http://" + listener.Addr().String()
	for path, expected := range map[string]string{
		"/countervm":    "rpc",
		"/countervm/ws": "ws",
	} {
		resp, err := http.Get(base + path)
		require.NoError(err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(err)
		require.NoError(resp.Body.Close())
		require.Equal(expected, string(body))
	}

	resp, err := http.Get(base + "/missing")
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal(http.StatusNotFound, resp.StatusCode)

	require.NoError(srv.Shutdown())
	require.ErrorIs(<-done, http.ErrServerClosed)
}

func TestFilterInvalidHosts(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected int
	}{
		{
			name:     "allowed host",
			host:     "node.example:9650",
			expected: http.StatusOK,
		},
		{
			name:     "allowed host case insensitive",
			host:     "NODE.example",
			expected: http.StatusOK,
		},
		{
			name:     "ip address",
			host:     "10.0.0.1:9650",
			expected: http.StatusOK,
		},
		{
			name:     "unknown host",
			host:     "attacker.example",
			expected: http.StatusForbidden,
		},
	}
	handler := filterInvalidHosts(okHandler("ok"), []string{"node.example"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			require.Equal(t, tt.expected, w.Code)
		})
	}
}
