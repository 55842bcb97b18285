// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFactory(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	f := NewFactory(logging.Config{
		RotatingWriterConfig: logging.RotatingWriterConfig{
			Directory: dir,
			MaxSize:   1,
		},
		LogLevel:                logging.Debug,
		DisplayLevel:            logging.Off,
		LogFormat:               logging.JSON,
		DisableWriterDisplaying: true,
	})

	log, err := f.Make("vm")
	require.NoError(err)
	_, err = f.Make("vm")
	require.ErrorIs(err, ErrDuplicateLogger)

	log.Info("counter initialized", zap.Uint8("count", 0))
	require.NoError(f.SetLogLevel("vm", logging.Warn))
	require.ErrorIs(f.SetDisplayLevel("rpc", logging.Info), ErrUnknownLogger)
	f.Close()

	b, err := os.ReadFile(filepath.Join(dir, "vm.log"))
	require.NoError(err)
	require.Contains(string(b), "counter initialized")
}
