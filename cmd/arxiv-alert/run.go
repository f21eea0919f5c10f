// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-alert/internal/alert"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one alert pass: fetch, filter, notify, commit",
	Long: `Run queries arXiv for recent papers in the configured categories,
drops papers already recorded in the ledger, applies optional keyword
rules, and sends the survivors through every enabled channel.

Channel failures are retried up to the configured attempt budget and
then logged; they never abort the run. Every surviving paper is
committed to the ledger even if all channels fail, so it will not be
offered again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		runner := alert.New(cfg)
		_, err = runner.Run(context.Background(), os.Stdout)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
