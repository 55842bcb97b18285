// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/cli/prompt"
	"github.com/ava-labs/countervm/utils"
)

var uriCmd = &cobra.Command{
	Use: "uri",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var setURICmd = &cobra.Command{
	Use:   "set [uri]",
	Short: "Sets the node the CLI talks to",
	RunE: func(cmd *cobra.Command, args []string) error {
		var uri string
		switch len(args) {
		case 0:
			u, err := chooseURI()
			if err != nil {
				return err
			}
			uri = u
		case 1:
			uri = args[0]
		default:
			return ErrInvalidArgs
		}
		if err := handler.SetURI(uri); err != nil {
			return err
		}
		cli, err := handler.Client()
		if err != nil {
			return err
		}
		if _, err := cli.Ping(cmd.Context()); err != nil {
			return err
		}
		networkID, chainID, err := cli.Network(cmd.Context())
		if err != nil {
			return err
		}
		printNetwork(networkID, chainID.String())
		return nil
	},
}

// chooseURI lets the user pick the local node or enter another uri.
func chooseURI() (string, error) {
	options := []string{cli.DefaultURI, "other"}
	for i, o := range options {
		utils.Outf("%d) %s\n", i, o)
	}
	index, err := prompt.Choice("uri", len(options))
	if err != nil {
		return "", err
	}
	if index == 0 {
		return cli.DefaultURI, nil
	}
	return prompt.String("uri", 1, 512)
}

var getURICmd = &cobra.Command{
	Use:   "get",
	Short: "Prints the current settings",
	RunE: func(*cobra.Command, []string) error {
		printSettings()
		return nil
	},
}

func printNetwork(networkID uint32, chainID string) {
	utils.Outf("{{yellow}}networkID:{{/}} %d {{yellow}}chainID:{{/}} %s\n", networkID, chainID)
}
