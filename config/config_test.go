// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	require := require.New(t)

	c, err := New(nil)
	require.NoError(err)
	require.Equal("127.0.0.1:9650", c.GetHTTPAddress())
	require.Equal(".countervm/logs", c.GetLogDir())
	require.False(c.GetTraceConfig().Enabled)
	require.False(c.GetContinuousProfilerConfig().Enabled)
	require.True(c.Pebble.Sync)
}

func TestLoad(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(os.WriteFile(path, []byte(`{
		"httpPort": 9999,
		"logLevel": "debug",
		"traceEnabled": true,
		"continuousProfilerDir": "/tmp/profiles"
	}`), 0o600))

	c, err := Load(path)
	require.NoError(err)
	require.Equal("127.0.0.1:9999", c.GetHTTPAddress())
	require.Equal(logging.Debug, c.LogLevel)
	require.True(c.GetTraceConfig().Enabled)
	require.True(c.GetContinuousProfilerConfig().Enabled)

	// Unset values keep their defaults
	require.Equal(1_024, c.RecentResultsSize)

	lc, err := c.GetLoggingConfig()
	require.NoError(err)
	require.Equal(c.GetLogDir(), lc.Directory)
	require.Equal(logging.Debug, lc.LogLevel)
}

func TestInvalid(t *testing.T) {
	require := require.New(t)

	_, err := New([]byte(`{"authVerificationCores": 0}`))
	require.ErrorIs(err, ErrInvalidValue)

	_, err = New([]byte(`{"recentResultsSize": -1}`))
	require.ErrorIs(err, ErrInvalidValue)

	_, err = New([]byte(`{"logFormat": "xml"}`))
	require.Error(err)

	_, err = New([]byte(`{`))
	require.Error(err)
}
