// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package alert

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-alert/internal/ledger"
	"github.com/pdiddy/arxiv-alert/internal/notify"
	"github.com/pdiddy/arxiv-alert/pkg/types"
)

type stubSearcher struct {
	papers []types.Paper
	err    error
}

func (s *stubSearcher) Search(_ context.Context, _ types.SearchConfig) ([]types.Paper, error) {
	return s.papers, s.err
}

type stubChannel struct {
	name  string
	fail  bool
	calls int
	got   [][]types.Paper
}

func (c *stubChannel) Name() string { return c.name }

func (c *stubChannel) Deliver(_ context.Context, papers []types.Paper) error {
	c.calls++
	c.got = append(c.got, papers)
	if c.fail {
		return errors.New("channel down")
	}
	return nil
}

func testRunner(t *testing.T, searcher Searcher, channels ...notify.Channel) *Runner {
	t.Helper()
	return &Runner{
		Searcher:    searcher,
		Channels:    channels,
		LedgerPath:  filepath.Join(t.TempDir(), "ledger.db"),
		Search:      types.SearchConfig{DaysBack: 1},
		MaxAttempts: 3,
	}
}

func ledgerIDs(t *testing.T, path string) map[string]struct{} {
	t.Helper()
	store, err := ledger.Open(path)
	require.NoError(t, err)
	defer store.Close()
	known, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	return known
}

func TestRunCommitsAndSecondRunFiltersOnlyNew(t *testing.T) {
	searcher := &stubSearcher{papers: []types.Paper{
		{ID: "2401.0001", Title: "Paper A"},
		{ID: "2401.0002", Title: "Paper B"},
	}}
	r := testRunner(t, searcher) // all channels disabled
	var buf bytes.Buffer

	summary, err := r.Run(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Fetched)
	assert.Equal(t, 2, summary.Filtered)
	assert.Equal(t, 2, summary.Committed)

	known := ledgerIDs(t, r.LedgerPath)
	assert.Contains(t, known, "2401.0001")
	assert.Contains(t, known, "2401.0002")

	// Second run: same two papers plus one new. Only the new one survives.
	searcher.papers = append(searcher.papers, types.Paper{ID: "2401.0003", Title: "Paper C"})
	summary, err = r.Run(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Fetched)
	assert.Equal(t, 1, summary.Filtered)
	assert.Equal(t, 1, summary.Committed)
	assert.Contains(t, ledgerIDs(t, r.LedgerPath), "2401.0003")
}

func TestRunCommitsEvenWhenAllChannelsExhaust(t *testing.T) {
	searcher := &stubSearcher{papers: []types.Paper{{ID: "2401.0001", Title: "Paper A"}}}
	dead := &stubChannel{name: "dead", fail: true}
	r := testRunner(t, searcher, dead)
	var buf bytes.Buffer

	summary, err := r.Run(context.Background(), &buf)
	require.NoError(t, err, "channel exhaustion must not fail the run")
	assert.Equal(t, 3, dead.calls)
	assert.Equal(t, 1, summary.Committed)
	assert.Contains(t, ledgerIDs(t, r.LedgerPath), "2401.0001")

	// A later run must not re-offer the paper despite the outage.
	summary, err = r.Run(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Filtered)
	assert.Equal(t, 3, dead.calls, "no redelivery on the second run")
}

func TestRunDispatchesFilteredSetToChannels(t *testing.T) {
	searcher := &stubSearcher{papers: []types.Paper{
		{ID: "2401.0001", Title: "Old"},
		{ID: "2401.0002", Title: "New"},
	}}
	ch := &stubChannel{name: "ok"}
	r := testRunner(t, searcher, ch)
	var buf bytes.Buffer

	// Pre-record the first paper so only the second is dispatched.
	store, err := ledger.Open(r.LedgerPath)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), "2401.0001", "Old", nil))
	require.NoError(t, store.Close())

	summary, err := r.Run(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Filtered)
	require.Len(t, ch.got, 1)
	require.Len(t, ch.got[0], 1)
	assert.Equal(t, "2401.0002", ch.got[0][0].ID)
}

func TestRunNoNewPapersSkipsDispatch(t *testing.T) {
	searcher := &stubSearcher{} // nothing fetched
	ch := &stubChannel{name: "ok"}
	r := testRunner(t, searcher, ch)
	var buf bytes.Buffer

	summary, err := r.Run(context.Background(), &buf)
	require.NoError(t, err)
	assert.Zero(t, ch.calls)
	assert.Empty(t, summary.Channels)
	assert.Contains(t, buf.String(), "no new papers to report")
}

func TestRunSearchFailureIsFatal(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("api down")}
	r := testRunner(t, searcher)
	var buf bytes.Buffer

	_, err := r.Run(context.Background(), &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching papers")
}

func TestRunLedgerOpenFailureIsFatal(t *testing.T) {
	r := testRunner(t, &stubSearcher{})
	r.LedgerPath = "/proc/nope/ledger.db"
	var buf bytes.Buffer

	_, err := r.Run(context.Background(), &buf)
	require.Error(t, err)
}

func TestNewWiresEnabledChannels(t *testing.T) {
	cfg := types.Default()
	cfg.Notifications.Slack = types.SlackConfig{Enabled: true, WebhookURL: "https://hooks.example.com/x"}
	r := New(cfg)

	require.NotNil(t, r.Searcher)
	require.Len(t, r.Channels, 1)
	assert.Equal(t, "slack", r.Channels[0].Name())
	assert.Equal(t, cfg.Ledger.Path, r.LedgerPath)
	assert.Equal(t, 3, r.MaxAttempts)
}
