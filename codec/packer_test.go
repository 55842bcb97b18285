// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/consts"
)

func TestNewWriter(t *testing.T) {
	require := require.New(t)

	wr := NewWriter(2, 2)
	require.True(wr.Empty())
	wr.PackBool(true)
	wr.PackBool(false)
	require.NoError(wr.Err())

	// Exceeding the limit must surface an error.
	wr.PackBool(true)
	require.Error(wr.Err())
}

func TestPackerID(t *testing.T) {
	require := require.New(t)
	id := ids.GenerateTestID()

	wp := NewWriter(consts.IDLen, consts.IDLen)
	wp.PackID(id)
	require.Len(wp.Bytes(), consts.IDLen)
	require.NoError(wp.Err())

	var unpacked ids.ID
	rp := NewReader(wp.Bytes(), consts.IDLen)
	rp.UnpackID(true, &unpacked)
	require.Equal(id, unpacked)
	require.NoError(rp.Err())
	require.True(rp.Empty())
}

func TestPackerRequiredID(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(consts.IDLen, consts.IDLen)
	wp.PackID(ids.Empty)

	var unpacked ids.ID
	rp := NewReader(wp.Bytes(), consts.IDLen)
	rp.UnpackID(true, &unpacked)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerAddress(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(3, ids.GenerateTestID())

	wp := NewWriter(AddressLen, AddressLen)
	wp.PackAddress(addr)
	require.NoError(wp.Err())

	var unpacked Address
	rp := NewReader(wp.Bytes(), AddressLen)
	rp.UnpackAddress(&unpacked)
	require.NoError(rp.Err())
	require.Equal(addr, unpacked)

	// The empty address is never valid on the wire.
	wp = NewWriter(AddressLen, AddressLen)
	wp.PackAddress(EmptyAddress)
	rp = NewReader(wp.Bytes(), AddressLen)
	rp.UnpackAddress(&unpacked)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerUnpackBytes(t *testing.T) {
	t.Run("limited", func(t *testing.T) {
		require := require.New(t)
		wp := NewWriter(16, 16)
		wp.PackBytes([]byte("hello"))

		var b []byte
		rp := NewReader(wp.Bytes(), 16)
		rp.UnpackBytes(5, true, &b)
		require.NoError(rp.Err())
		require.Equal([]byte("hello"), b)
	})

	t.Run("over limit", func(t *testing.T) {
		require := require.New(t)
		wp := NewWriter(16, 16)
		wp.PackBytes([]byte("hello"))

		var b []byte
		rp := NewReader(wp.Bytes(), 16)
		rp.UnpackBytes(2, true, &b)
		require.Error(rp.Err())
	})

	t.Run("required", func(t *testing.T) {
		require := require.New(t)
		wp := NewWriter(16, 16)
		wp.PackBytes(nil)

		var b []byte
		rp := NewReader(wp.Bytes(), 16)
		rp.UnpackBytes(-1, true, &b)
		require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
	})
}

func TestPackerIntegers(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(32, 32)
	wp.PackByte(9)
	wp.PackInt(10)
	wp.PackUint64(11)
	wp.PackInt64(-12)
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), 32)
	require.Equal(byte(9), rp.UnpackByte())
	require.Equal(uint32(10), rp.UnpackInt(true))
	require.Equal(uint64(11), rp.UnpackUint64(true))
	require.Equal(int64(-12), rp.UnpackInt64(true))
	require.NoError(rp.Err())
	require.True(rp.Empty())
}
