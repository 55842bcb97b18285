// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

const hrp = "blah"

func TestAddress(t *testing.T) {
	require := require.New(t)
	typeID := byte(0)
	addrID := ids.GenerateTestID()

	addr := CreateAddress(typeID, addrID)
	addrStr, err := addr.MarshalText()
	require.NoError(err)

	var parsedAddr Address
	require.NoError(parsedAddr.UnmarshalText(addrStr))
	require.Equal(addr, parsedAddr)
	require.Equal(typeID, parsedAddr.TypeID())
}

func TestAddressJSON(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(1, ids.GenerateTestID())

	addrJSONBytes, err := json.Marshal(addr)
	require.NoError(err)

	var parsedAddr Address
	require.NoError(json.Unmarshal(addrJSONBytes, &parsedAddr))
	require.Equal(addr, parsedAddr)
}

func TestAddressUnmarshalWrongSize(t *testing.T) {
	require := require.New(t)

	var parsedAddr Address
	require.ErrorIs(parsedAddr.UnmarshalText([]byte("0x0102")), ErrInvalidSize)
}

func TestToAddress(t *testing.T) {
	require := require.New(t)

	_, err := ToAddress(make([]byte, AddressLen-1))
	require.ErrorIs(err, ErrInvalidSize)

	b := make([]byte, AddressLen)
	b[0] = 7
	addr, err := ToAddress(b)
	require.NoError(err)
	require.Equal(uint8(7), addr.TypeID())
}

func TestAddressBech32(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(0xf0, ids.GenerateTestID())

	saddr, err := AddressBech32(hrp, addr)
	require.NoError(err)

	parsed, err := ParseAddressBech32(hrp, saddr)
	require.NoError(err)
	require.Equal(addr, parsed)

	_, err = ParseAddressBech32("other", saddr)
	require.ErrorIs(err, ErrIncorrectHRP)
}

func TestMustAddressBech32Panics(t *testing.T) {
	require := require.New(t)
	longHRP := string(make([]byte, 40))
	require.Panics(func() {
		MustAddressBech32(longHRP, EmptyAddress)
	})
}
