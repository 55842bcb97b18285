// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/consts"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints out the version",
		RunE: func(*cobra.Command, []string) error {
			fmt.Printf("%s@%s (%s)\n", consts.Name, consts.Version, consts.ID)
			return nil
		},
	}
}
