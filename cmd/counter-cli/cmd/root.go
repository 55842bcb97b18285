// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/utils"
)

const (
	fsModeWrite      = 0o600
	defaultDirectory = ".counter-cli"
	defaultSettings  = "settings.yaml"
	defaultGenesis   = "genesis.json"
)

var (
	handler *cli.Handler

	settingsPath          string
	genesisFile           string
	networkID             uint32
	validityWindow        int64
	maxActionsPerTx       int
	recordAddress         string
	recordSeed            string
	skipConfirm           bool
	prometheusBaseURI     string
	prometheusOpenBrowser bool
	prometheusFile        string
	prometheusData        string

	rootCmd = &cobra.Command{
		Use:        "counter-cli",
		Short:      "CounterVM CLI",
		SuggestFor: []string{"counter-cli", "countercli"},
	}
)

func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(defaultDirectory, defaultSettings)
	}
	return filepath.Join(home, defaultDirectory, defaultSettings)
}

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		genesisCmd,
		keyCmd,
		uriCmd,
		counterCmd,
		watchCmd,
		prometheusCmd,
	)
	rootCmd.PersistentFlags().StringVar(
		&settingsPath,
		"settings",
		defaultSettingsPath(),
		"path to settings (will create it missing)",
	)
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		h, err := cli.New(settingsPath)
		if err != nil {
			return err
		}
		handler = h
		return nil
	}
	rootCmd.SilenceErrors = true

	// genesis
	genGenesisCmd.PersistentFlags().StringVar(
		&genesisFile,
		"genesis-file",
		defaultGenesis,
		"genesis file path",
	)
	genGenesisCmd.PersistentFlags().Uint32Var(
		&networkID,
		"network-id",
		0,
		"network ID (0 keeps the default)",
	)
	genGenesisCmd.PersistentFlags().Int64Var(
		&validityWindow,
		"validity-window",
		-1,
		"validity window (ms)",
	)
	genGenesisCmd.PersistentFlags().IntVar(
		&maxActionsPerTx,
		"max-actions-per-tx",
		-1,
		"max actions per tx",
	)
	genesisCmd.AddCommand(
		genGenesisCmd,
	)

	// key
	keyCmd.AddCommand(
		genKeyCmd,
		importKeyCmd,
		addressKeyCmd,
		balanceKeyCmd,
	)

	// uri
	uriCmd.AddCommand(
		setURICmd,
		getURICmd,
	)

	// counter
	for _, c := range []*cobra.Command{
		initializeCmd,
		incrementCmd,
		decrementCmd,
		setCmd,
		closeCmd,
		getCmd,
	} {
		c.PersistentFlags().StringVar(
			&recordAddress,
			"record",
			"",
			"bech32 address of the counter record",
		)
		c.PersistentFlags().StringVar(
			&recordSeed,
			"seed",
			"",
			"seed the counter record address is derived from",
		)
		counterCmd.AddCommand(c)
	}
	closeCmd.PersistentFlags().BoolVar(
		&skipConfirm,
		"yes",
		false,
		"close the record without asking for confirmation",
	)

	// prometheus
	generatePrometheusCmd.PersistentFlags().StringVar(
		&prometheusBaseURI,
		"prometheus-base-uri",
		"http://localhost:9090",
		"prometheus server location",
	)
	generatePrometheusCmd.PersistentFlags().BoolVar(
		&prometheusOpenBrowser,
		"prometheus-open-browser",
		false,
		"open browser to prometheus dashboard",
	)
	generatePrometheusCmd.PersistentFlags().StringVar(
		&prometheusFile,
		"prometheus-file",
		"/tmp/prometheus.yaml",
		"prometheus file location",
	)
	generatePrometheusCmd.PersistentFlags().StringVar(
		&prometheusData,
		"prometheus-data",
		fmt.Sprintf("/tmp/prometheus-%d", time.Now().Unix()),
		"prometheus data location",
	)
	prometheusCmd.AddCommand(
		generatePrometheusCmd,
	)
}

func Execute() error {
	return rootCmd.Execute()
}

func printSettings() {
	s := handler.Settings()
	utils.Outf("{{yellow}}uri:{{/}} %s {{yellow}}key:{{/}} %s\n", s.URI, s.KeyPath)
}
