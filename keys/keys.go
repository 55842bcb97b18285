// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"encoding/binary"

	"github.com/ava-labs/countervm/consts"
)

const chunkSize = 64 // bytes

// Valid returns whether [key] carries a chunk suffix.
func Valid(key []byte) bool {
	return len(key) >= consts.Uint16Len
}

// MaxChunks returns the maximum number of value chunks that can be stored at
// [key].
func MaxChunks(key []byte) (uint16, bool) {
	l := len(key)
	if l < consts.Uint16Len {
		return 0, false
	}
	return binary.BigEndian.Uint16(key[l-consts.Uint16Len:]), true
}

// NumChunks returns the number of chunks [value] occupies.
func NumChunks(value []byte) (uint16, bool) {
	return numChunks(len(value))
}

func numChunks(valueLen int) (uint16, bool) {
	if valueLen == 0 {
		return 0, true
	}
	raw := valueLen/chunkSize + 1
	if raw > int(consts.MaxUint16) {
		return 0, false
	}
	return uint16(raw), true
}

// VerifyValue returns whether [value] fits in the chunks reserved by [key].
func VerifyValue(key []byte, value []byte) bool {
	valueChunks, ok := NumChunks(value)
	if !ok {
		return false
	}
	keyChunks, ok := MaxChunks(key)
	if !ok {
		return false
	}
	return valueChunks <= keyChunks
}

// Encode suffixes [key] with the number of chunks required to hold a value of
// [maxSize] bytes.
func Encode(key []byte, maxSize int) ([]byte, bool) {
	numChunks, ok := numChunks(maxSize)
	if !ok {
		return nil, false
	}
	return EncodeChunks(key, numChunks), true
}

// EncodeChunks suffixes [key] with [maxChunks].
func EncodeChunks(key []byte, maxChunks uint16) []byte {
	k := make([]byte, 0, len(key)+consts.Uint16Len)
	k = append(k, key...)
	return binary.BigEndian.AppendUint16(k, maxChunks)
}
