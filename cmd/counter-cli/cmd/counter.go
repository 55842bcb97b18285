// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/cli/prompt"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

var counterCmd = &cobra.Command{
	Use: "counter",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

// record resolves the counter record from the --record and --seed flags. If
// neither is provided, a new random record is used when [create] is set and
// the user is prompted otherwise.
func record(create bool) (codec.Address, error) {
	switch {
	case len(recordAddress) > 0 && len(recordSeed) > 0:
		return codec.EmptyAddress, ErrRecordAndSeed
	case len(recordAddress) > 0:
		return prompt.ParseAddress(consts.HRP, recordAddress)
	case len(recordSeed) > 0 || create:
		return cli.RecordAddress(recordSeed)
	default:
		return prompt.Address("record", consts.HRP)
	}
}

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Creates a counter record set to 0",
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := record(true)
		if err != nil {
			return err
		}
		return handler.Initialize(cmd.Context(), r)
	},
}

var incrementCmd = &cobra.Command{
	Use:   "increment",
	Short: "Adds 1 to a counter",
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := record(false)
		if err != nil {
			return err
		}
		return handler.Increment(cmd.Context(), r)
	},
}

var decrementCmd = &cobra.Command{
	Use:   "decrement",
	Short: "Subtracts 1 from a counter",
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := record(false)
		if err != nil {
			return err
		}
		return handler.Decrement(cmd.Context(), r)
	},
}

var setCmd = &cobra.Command{
	Use:   "set [value]",
	Short: "Overwrites a counter with [value]",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			value uint8
			err   error
		)
		switch len(args) {
		case 0:
			value, err = prompt.Uint8("value")
		case 1:
			value, err = prompt.ParseUint8(args[0])
		default:
			return ErrInvalidArgs
		}
		if err != nil {
			return err
		}
		r, err := record(false)
		if err != nil {
			return err
		}
		return handler.Set(cmd.Context(), r, value)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Deletes a counter and refunds its deposit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := record(false)
		if err != nil {
			return err
		}
		if !skipConfirm {
			cont, err := prompt.Continue()
			if !cont || err != nil {
				return err
			}
		}
		return handler.Close(cmd.Context(), r)
	},
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Prints the value of a counter",
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := record(false)
		if err != nil {
			return err
		}
		_, err = handler.Get(cmd.Context(), r)
		return err
	},
}
