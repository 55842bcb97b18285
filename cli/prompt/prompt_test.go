// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
)

func TestParseUint8(t *testing.T) {
	tests := []struct {
		input       string
		expected    uint8
		expectedErr error
	}{
		{input: "0", expected: 0},
		{input: " 255 ", expected: 255},
		{input: "256", expectedErr: ErrInvalidChoice},
		{input: "-1", expectedErr: ErrInvalidChoice},
		{input: "", expectedErr: ErrInputEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseUint8(tt.input)
			require.ErrorIs(t, err, tt.expectedErr)
			require.Equal(t, tt.expected, v)
		})
	}
}

func TestParseChoice(t *testing.T) {
	require := require.New(t)

	i, err := ParseChoice("1", 2)
	require.NoError(err)
	require.Equal(1, i)

	_, err = ParseChoice("2", 2)
	require.ErrorIs(err, ErrIndexOutOfRange)
	_, err = ParseChoice("", 2)
	require.ErrorIs(err, ErrInputEmpty)
}

func TestParseBool(t *testing.T) {
	require := require.New(t)

	v, err := ParseBool("Y")
	require.NoError(err)
	require.True(v)
	v, err = ParseBool("n")
	require.NoError(err)
	require.False(v)
	_, err = ParseBool("maybe")
	require.ErrorIs(err, ErrInvalidChoice)
}

func TestParseAddress(t *testing.T) {
	require := require.New(t)

	addr := codec.CreateAddress(0, ids.GenerateTestID())
	parsed, err := ParseAddress("counter", " "+codec.MustAddressBech32("counter", addr)+" ")
	require.NoError(err)
	require.Equal(addr, parsed)

	_, err = ParseAddress("counter", "")
	require.ErrorIs(err, ErrInputEmpty)
	_, err = ParseAddress("counter", codec.MustAddressBech32("other", addr))
	require.ErrorIs(err, codec.ErrIncorrectHRP)
}
