// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledTracer(t *testing.T) {
	require := require.New(t)

	tr, err := New(&Config{Enabled: false})
	require.NoError(err)
	require.Equal(Noop, tr)

	ctx, span := tr.Start(context.Background(), "counter.Execute")
	require.NotNil(ctx)
	require.False(span.IsRecording())
	span.End()
	require.NoError(tr.Close())
}

func TestEnabledTracer(t *testing.T) {
	require := require.New(t)

	tr, err := New(&Config{
		Enabled:         true,
		TraceSampleRate: 1,
		AppName:         "countervm",
		Agent:           "test",
		Version:         "v0.1.0",
	})
	require.NoError(err)

	_, span := tr.Start(context.Background(), "counter.Execute")
	require.True(span.IsRecording())
	span.End()
}
