// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto"
	"github.com/ava-labs/countervm/crypto/ed25519"
)

var testMsg = []byte("set:200")

func newFactory(t *testing.T) *ED25519Factory {
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(t, err)
	return NewED25519Factory(priv)
}

func TestED25519SignVerify(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	factory := newFactory(t)

	auth, err := factory.Sign(testMsg)
	require.NoError(err)
	require.NoError(auth.Verify(ctx, testMsg))
	require.ErrorIs(auth.Verify(ctx, []byte("set:201")), crypto.ErrInvalidSignature)
	require.Equal(factory.Address(), auth.Actor())
	require.Equal(consts.ED25519ID, auth.Actor().TypeID())
}

func TestED25519Marshal(t *testing.T) {
	require := require.New(t)
	factory := newFactory(t)

	auth, err := factory.Sign(testMsg)
	require.NoError(err)
	p := codec.NewWriter(auth.Size(), consts.NetworkSizeLimit)
	auth.Marshal(p)
	require.NoError(p.Err())
	require.Len(p.Bytes(), ED25519Size)

	parsed, err := UnmarshalED25519(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
	require.NoError(err)
	require.Equal(auth.(*ED25519).Signer, parsed.(*ED25519).Signer)
	require.Equal(auth.(*ED25519).Signature, parsed.(*ED25519).Signature)
	require.Equal(auth.Actor(), parsed.Actor())

	_, err = UnmarshalED25519(codec.NewReader(p.Bytes()[:ED25519Size-1], consts.NetworkSizeLimit))
	require.Error(err)
}

func verifyBatch(t *testing.T, auths []chain.Auth, msgs [][]byte, cores int) error {
	bv := (&ED25519AuthEngine{}).GetBatchVerifier(cores, len(auths))
	verifiers := []func() error{}
	for i, auth := range auths {
		if verify := bv.Add(msgs[i], auth); verify != nil {
			verifiers = append(verifiers, verify)
		}
	}
	verifiers = append(verifiers, bv.Done()...)
	require.NotEmpty(t, verifiers)
	for _, verify := range verifiers {
		if err := verify(); err != nil {
			return err
		}
	}
	return nil
}

func TestED25519Batch(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		cores   int
		corrupt int
	}{
		{name: "single", count: 1, cores: 4, corrupt: -1},
		{name: "exact batches", count: 16, cores: 2, corrupt: -1},
		{name: "partial batch", count: 11, cores: 2, corrupt: -1},
		{name: "invalid in full batch", count: 16, cores: 2, corrupt: 3},
		{name: "invalid in last batch", count: 11, cores: 2, corrupt: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			auths := make([]chain.Auth, tt.count)
			msgs := make([][]byte, tt.count)
			for i := 0; i < tt.count; i++ {
				factory := newFactory(t)
				msgs[i] = append([]byte{byte(i)}, testMsg...)
				auth, err := factory.Sign(msgs[i])
				require.NoError(err)
				auths[i] = auth
			}
			if tt.corrupt >= 0 {
				msgs[tt.corrupt] = []byte("tampered")
				require.ErrorIs(verifyBatch(t, auths, msgs, tt.cores), crypto.ErrInvalidSignature)
				return
			}
			require.NoError(verifyBatch(t, auths, msgs, tt.cores))
		})
	}
}

func TestPrivateKeys(t *testing.T) {
	require := require.New(t)

	pk, err := GenerateED25519PrivateKey()
	require.NoError(err)
	factory, err := GetFactory(pk)
	require.NoError(err)
	require.Equal(pk.Address, factory.Address())

	path := filepath.Join(t.TempDir(), "key.pk")
	require.NoError(ed25519.PrivateKey(pk.Bytes).Save(path))
	loaded, err := LoadED25519PrivateKey(path)
	require.NoError(err)
	require.Equal(pk, loaded)

	_, err = GetFactory(&PrivateKey{Address: codec.CreateAddress(consts.RecordAddressID, [32]byte{}), Bytes: pk.Bytes})
	require.ErrorIs(err, ErrInvalidKeyType)
}
