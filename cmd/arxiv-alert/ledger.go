// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-alert/internal/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the sent-papers ledger (list, export)",
	Long: `Ledger inspects the local SQLite database of papers already offered
for notification. Entries are permanent; the pipeline never announces a
recorded paper again.`,
}

// --- list subcommand ---

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded papers, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Entries(context.Background())
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("Ledger is empty.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "%-14s  %-56s  %-20s  %s\n", "ID", "Title", "Sent", "Categories")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
		for _, e := range entries {
			title := e.Title
			if len(title) > 56 {
				title = title[:53] + "..."
			}
			sent := ""
			if !e.SentAt.IsZero() {
				sent = e.SentAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(os.Stdout, "%-14s  %-56s  %-20s  %s\n",
				e.PaperID, title, sent, strings.Join(e.Categories, ","))
		}
		fmt.Fprintf(os.Stdout, "\n%d entries\n", len(entries))
		return nil
	},
}

// --- export subcommand ---

var ledgerExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger to YAML or JSON on stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Close()

		switch format {
		case "yaml", "":
			return store.ExportYAML(context.Background(), os.Stdout)
		case "json":
			return store.ExportJSON(context.Background(), os.Stdout)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
	},
}

func openLedger() (*ledger.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return ledger.Open(cfg.Ledger.Path)
}

func init() {
	ledgerExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerExportCmd)
	rootCmd.AddCommand(ledgerCmd)
}
