// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/genesis"
)

func newGenesisCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "genesis",
		Short: "Prints out the genesis the node would start with and its chain ID",
		RunE: func(*cobra.Command, []string) error {
			var raw []byte
			if len(genesisFile) > 0 {
				b, err := os.ReadFile(genesisFile)
				if err != nil {
					return err
				}
				raw = b
			}
			g, err := genesis.New(raw)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			fmt.Printf("chainID: %s\n", genesis.ChainID(raw))
			return nil
		},
	}
}
