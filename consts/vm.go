// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/version"
)

const (
	HRP      = "counter"
	Name     = "countervm"
	Symbol   = "LAMP"
	Decimals = 9
)

var (
	// ID identifies the VM.
	ID ids.ID

	// ProgramID is the owner of every Counter Record.
	ProgramID ids.ID
)

func init() {
	ID = mustPaddedID(Name)
	ProgramID = mustPaddedID("votedapp")
}

func mustPaddedID(name string) ids.ID {
	b := make([]byte, ids.IDLen)
	copy(b, []byte(name))
	id, err := ids.ToID(b)
	if err != nil {
		panic(err)
	}
	return id
}

var Version = &version.Semantic{
	Major: 0,
	Minor: 1,
	Patch: 0,
}
