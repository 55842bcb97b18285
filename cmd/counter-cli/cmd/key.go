// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use: "key",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var genKeyCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Creates an ed25519 key at [path] and makes it the default",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		_, err := handler.GenerateKey(args[0])
		return err
	},
}

var importKeyCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Makes the ed25519 key stored at [path] the default",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		_, err := handler.ImportKey(args[0])
		return err
	},
}

var addressKeyCmd = &cobra.Command{
	Use:   "address",
	Short: "Prints the address of the default key",
	RunE: func(*cobra.Command, []string) error {
		_, err := handler.Address()
		return err
	},
}

var balanceKeyCmd = &cobra.Command{
	Use:   "balance",
	Short: "Prints the balance of the default key",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := handler.Balance(cmd.Context())
		return err
	},
}
