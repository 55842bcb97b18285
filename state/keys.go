// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "github.com/ava-labs/countervm/keys"

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Keys maps a state key to the permissions a transaction holds on it. By
// default, initialization of Keys with duplicate key will not work. And to
// prevent duplicate insertions from overriding the original permissions, use
// the Add function below.
type Keys map[string]Permissions

// All acceptable permission options
type Permissions byte

// Add unions [permission] with the permissions already held on [name].
//
// Transactions are expected to use this to prevent overriding of key
// permissions: a transaction's permissions are the union of all state keys
// declared by its actions.
func (k Keys) Add(name string, permission Permissions) bool {
	if !keys.Valid([]byte(name)) {
		return false
	}
	k[name] |= permission
	return true
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}
