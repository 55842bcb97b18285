// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/consts"
)

var (
	configFile  string
	genesisFile string

	rootCmd = &cobra.Command{
		Use:        consts.Name,
		Short:      "Counter program node",
		SuggestFor: []string{consts.Name},
		RunE:       runFunc,
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"path to the node config (JSON)",
	)
	rootCmd.PersistentFlags().StringVar(
		&genesisFile,
		"genesis",
		"",
		"path to the genesis (JSON), the default genesis is used if empty",
	)
	rootCmd.AddCommand(
		newGenesisCommand(),
		newVersionCommand(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed %v\n", consts.Name, err)
		os.Exit(1)
	}
	os.Exit(0)
}
