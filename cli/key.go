// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/utils"
)

// GenerateKey creates a new signing key at [path] and makes it the default.
func (h *Handler) GenerateKey(path string) (codec.Address, error) {
	if _, err := os.Stat(path); err == nil {
		return codec.EmptyAddress, ErrKeyExists
	} else if !errors.Is(err, os.ErrNotExist) {
		return codec.EmptyAddress, err
	}
	priv, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return codec.EmptyAddress, err
	}
	if err := os.MkdirAll(filepath.Dir(path), fsModeDir); err != nil {
		return codec.EmptyAddress, err
	}
	if err := priv.Save(path); err != nil {
		return codec.EmptyAddress, err
	}
	addr := auth.NewED25519Address(priv.PublicKey())
	utils.Outf(
		"{{green}}created address:{{/}} %s\n",
		codec.MustAddressBech32(consts.HRP, addr),
	)
	return addr, h.setKey(path)
}

// ImportKey makes the key stored at [path] the default.
func (h *Handler) ImportKey(path string) (codec.Address, error) {
	pk, err := auth.LoadED25519PrivateKey(path)
	if err != nil {
		return codec.EmptyAddress, err
	}
	utils.Outf(
		"{{green}}imported address:{{/}} %s\n",
		codec.MustAddressBech32(consts.HRP, pk.Address),
	)
	return pk.Address, h.setKey(path)
}

func (h *Handler) setKey(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	h.settings.KeyPath = abs
	return h.settings.Save(h.settingsPath)
}

// Address prints the address of the default key.
func (h *Handler) Address() (codec.Address, error) {
	factory, err := h.Factory()
	if err != nil {
		return codec.EmptyAddress, err
	}
	addr := factory.Address()
	utils.Outf(
		"{{yellow}}address:{{/}} %s\n",
		codec.MustAddressBech32(consts.HRP, addr),
	)
	return addr, nil
}

// Balance prints the balance of the default key.
func (h *Handler) Balance(ctx context.Context) (uint64, error) {
	factory, err := h.Factory()
	if err != nil {
		return 0, err
	}
	cli, err := h.Client()
	if err != nil {
		return 0, err
	}
	addr, err := cli.Address(ctx, factory.Address())
	if err != nil {
		return 0, err
	}
	balance, err := cli.Balance(ctx, addr)
	if err != nil {
		return 0, err
	}
	utils.Outf(
		"{{yellow}}address:{{/}} %s {{yellow}}balance:{{/}} %s %s\n",
		addr,
		utils.FormatBalance(balance),
		consts.Symbol,
	)
	return balance, nil
}
