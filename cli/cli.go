// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"fmt"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/utils"
)

// Handler implements the commands of the CLI on top of the settings stored at
// [settingsPath].
type Handler struct {
	settingsPath string
	settings     *Settings
}

func New(settingsPath string) (*Handler, error) {
	s, err := LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}
	return &Handler{
		settingsPath: settingsPath,
		settings:     s,
	}, nil
}

func (h *Handler) Settings() *Settings {
	return h.settings
}

// SetURI stores [uri] as the node the CLI talks to.
func (h *Handler) SetURI(uri string) error {
	if len(uri) == 0 {
		return ErrNoURI
	}
	h.settings.URI = uri
	if err := h.settings.Save(h.settingsPath); err != nil {
		return err
	}
	utils.Outf("{{yellow}}uri:{{/}} %s\n", uri)
	return nil
}

func (h *Handler) Client() (*rpc.JSONRPCClient, error) {
	if len(h.settings.URI) == 0 {
		return nil, ErrNoURI
	}
	return rpc.NewJSONRPCClient(h.settings.URI), nil
}

// Factory loads the configured signing key.
func (h *Handler) Factory() (chain.AuthFactory, error) {
	if len(h.settings.KeyPath) == 0 {
		return nil, ErrNoKey
	}
	pk, err := auth.LoadED25519PrivateKey(h.settings.KeyPath)
	if err != nil {
		return nil, err
	}
	return auth.GetFactory(pk)
}

// submit signs [actions] with the configured key and submits them in a single
// transaction. An unsuccessful result is returned as [ErrTxFailed].
func (h *Handler) submit(ctx context.Context, actions ...chain.Action) (*chain.Result, error) {
	cli, err := h.Client()
	if err != nil {
		return nil, err
	}
	factory, err := h.Factory()
	if err != nil {
		return nil, err
	}
	txID, result, err := cli.SubmitActions(ctx, actions, factory)
	if err != nil {
		return nil, err
	}
	PrintStatus(txID.String(), result.Success)
	if !result.Success {
		return result, fmt.Errorf("%w: %s", ErrTxFailed, result.Error)
	}
	return result, nil
}

func (h *Handler) address(ctx context.Context, addr codec.Address) (string, error) {
	cli, err := h.Client()
	if err != nil {
		return "", err
	}
	return cli.Address(ctx, addr)
}

func PrintStatus(txID string, success bool) {
	status := "⚠️"
	if success {
		status = "✅"
	}
	utils.Outf("%s {{yellow}}txID:{{/}} %s\n", status, txID)
}
