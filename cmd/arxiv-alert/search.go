// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-alert/internal/arxiv"
	"github.com/pdiddy/arxiv-alert/internal/filter"
	"github.com/pdiddy/arxiv-alert/internal/ledger"
	"github.com/pdiddy/arxiv-alert/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Preview the papers the next run would announce",
	Long: `Search runs the fetch and filter stages and prints the papers that
would be dispatched, without sending notifications or touching the
ledger contents. Use it to tune categories and keyword rules.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		client := arxiv.NewClient(cfg.Search)
		papers, err := client.Search(ctx, cfg.Search)
		if err != nil {
			return err
		}

		store, err := ledger.Open(cfg.Ledger.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		known, err := store.Snapshot(ctx)
		if err != nil {
			return err
		}

		kept := filter.Apply(papers, known, cfg.Filter)
		printCandidates(kept, len(papers))
		return nil
	},
}

func printCandidates(papers []types.Paper, fetched int) {
	if len(papers) == 0 {
		fmt.Printf("No new papers (%d fetched, all filtered).\n", fetched)
		return
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-60s  %-12s  %s\n", "ID", "Title", "Published", "Categories")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, p := range papers {
		title := p.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		published := ""
		if !p.Published.IsZero() {
			published = p.Published.Format("2006-01-02")
		}
		fmt.Fprintf(os.Stdout, "%-12s  %-60s  %-12s  %s\n",
			p.ID, title, published, strings.Join(p.Categories, ","))
	}

	fmt.Fprintf(os.Stdout, "\n%d new paper(s) of %d fetched\n", len(papers), fetched)
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
