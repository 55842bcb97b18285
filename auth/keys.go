// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"errors"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
)

var ErrInvalidKeyType = errors.New("invalid key type")

// PrivateKey pairs the raw bytes of a signing key with the address it
// controls.
type PrivateKey struct {
	Address codec.Address
	Bytes   []byte
}

func GenerateED25519PrivateKey() (*PrivateKey, error) {
	p, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		Address: NewED25519Address(p.PublicKey()),
		Bytes:   p[:],
	}, nil
}

func LoadED25519PrivateKey(path string) (*PrivateKey, error) {
	p, err := ed25519.LoadKey(path)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		Address: NewED25519Address(p.PublicKey()),
		Bytes:   p[:],
	}, nil
}

// GetFactory returns the [chain.AuthFactory] for a given private key.
func GetFactory(pk *PrivateKey) (chain.AuthFactory, error) {
	switch pk.Address.TypeID() {
	case consts.ED25519ID:
		if len(pk.Bytes) != ed25519.PrivateKeyLen {
			return nil, ErrInvalidKeyType
		}
		return NewED25519Factory(ed25519.PrivateKey(pk.Bytes)), nil
	default:
		return nil, ErrInvalidKeyType
	}
}
