// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package alert orchestrates one pipeline run: query arXiv, drop papers
// already announced, dispatch the survivors, and commit them to the
// ledger.
package alert

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/arxiv-alert/internal/arxiv"
	"github.com/pdiddy/arxiv-alert/internal/filter"
	"github.com/pdiddy/arxiv-alert/internal/ledger"
	"github.com/pdiddy/arxiv-alert/internal/notify"
	"github.com/pdiddy/arxiv-alert/pkg/types"
)

// Searcher fetches candidate papers, newest first.
type Searcher interface {
	Search(ctx context.Context, cfg types.SearchConfig) ([]types.Paper, error)
}

// Summary holds the outcome of one run.
type Summary struct {
	Fetched   int
	Filtered  int
	Committed int
	Channels  []notify.ChannelResult
}

// Runner wires the pipeline stages together. Construct it with New for
// production use; tests substitute Searcher and Channels directly.
type Runner struct {
	Searcher    Searcher
	Channels    []notify.Channel
	LedgerPath  string
	Search      types.SearchConfig
	Filter      types.FilterConfig
	MaxAttempts int
}

// New builds a Runner from configuration: the arXiv client as searcher
// and the enabled notification channels.
func New(cfg types.Config) *Runner {
	return &Runner{
		Searcher:    arxiv.NewClient(cfg.Search),
		Channels:    notify.FromConfig(cfg.Notifications),
		LedgerPath:  cfg.Ledger.Path,
		Search:      cfg.Search,
		Filter:      cfg.Filter,
		MaxAttempts: cfg.Notifications.Retry.MaxAttempts,
	}
}

// Run executes one pipeline pass, logging progress to w.
//
// Ledger or search failures abort the run; channel failures do not.
// Every filtered paper is committed to the ledger after dispatch
// concludes, whether or not any channel delivered it: once a paper has
// been offered for notification it is never offered again, so a channel
// outage cannot cause a notification storm on later runs.
func (r *Runner) Run(ctx context.Context, w io.Writer) (Summary, error) {
	var summary Summary

	store, err := ledger.Open(r.LedgerPath)
	if err != nil {
		return summary, err
	}
	defer store.Close()

	papers, err := r.Searcher.Search(ctx, r.Search)
	if err != nil {
		return summary, fmt.Errorf("fetching papers: %w", err)
	}
	summary.Fetched = len(papers)
	fmt.Fprintf(w, "found %d paper(s) from the last %d day(s)\n", len(papers), r.Search.DaysBack)

	known, err := store.Snapshot(ctx)
	if err != nil {
		return summary, err
	}

	kept := filter.Apply(papers, known, r.Filter)
	summary.Filtered = len(kept)
	fmt.Fprintf(w, "filtered to %d new paper(s)\n", len(kept))

	if len(kept) == 0 {
		fmt.Fprintln(w, "no new papers to report")
		return summary, nil
	}

	summary.Channels = notify.Dispatch(ctx, r.Channels, kept, r.MaxAttempts, w)

	// Commit after all channels have concluded, regardless of outcome.
	for _, p := range kept {
		if err := store.Record(ctx, p.ID, p.Title, p.Categories); err != nil {
			return summary, err
		}
		summary.Committed++
	}

	fmt.Fprintf(w, "run complete: %d fetched, %d new, %d committed\n",
		summary.Fetched, summary.Filtered, summary.Committed)
	return summary, nil
}
