// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv queries the arXiv API for recently submitted papers.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-alert/internal/httputil"
	"github.com/pdiddy/arxiv-alert/pkg/types"
)

// apiBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var apiBase = "https://export.arxiv.org/api/query"

// Client fetches candidate papers from the arXiv API.
type Client struct {
	HTTPClient *http.Client
}

// NewClient returns a Client with a timeout taken from cfg.
func NewClient(cfg types.SearchConfig) *Client {
	return &Client{HTTPClient: &http.Client{Timeout: cfg.Timeout}}
}

// Search queries arXiv for the configured categories and keywords,
// sorted by submission date descending, and drops papers published
// before the days-back cutoff. Result order is the API's recency order.
func (c *Client) Search(ctx context.Context, cfg types.SearchConfig) ([]types.Paper, error) {
	q := buildQuery(cfg.Categories, cfg.Keywords)
	if q == "" {
		return nil, fmt.Errorf("empty arXiv query: no categories configured")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 100
	}

	url := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		apiBase, q, maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTPClient, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var cutoff time.Time
	if cfg.DaysBack > 0 {
		cutoff = time.Now().AddDate(0, 0, -cfg.DaysBack)
	}

	var papers []types.Paper
	for _, entry := range feed.Entries {
		id := extractID(entry.ID)
		if id == "" {
			continue
		}

		p := types.Paper{
			ID:       id,
			Title:    strings.Join(strings.Fields(entry.Title), " "),
			Abstract: strings.TrimSpace(entry.Summary),
			URL:      entry.ID,
		}

		for _, a := range entry.Authors {
			p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
		}
		for _, cat := range entry.Categories {
			p.Categories = append(p.Categories, cat.Term)
		}

		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			p.Published = t
		}

		// The feed is newest-first, so anything past the cutoff means
		// the rest of the feed is older too, but entries can arrive
		// slightly out of order around announcement boundaries; check
		// each one rather than breaking early.
		if !cutoff.IsZero() && p.Published.Before(cutoff) {
			continue
		}

		papers = append(papers, p)
	}
	return papers, nil
}

// buildQuery constructs the search_query parameter: categories OR-joined,
// optionally AND-ed with an OR-join of all-field keywords, e.g.
// "(cat:cs.AI+OR+cat:cs.LG)+AND+(all:transformer)".
func buildQuery(categories, keywords []string) string {
	if len(categories) == 0 {
		return ""
	}

	catParts := make([]string, 0, len(categories))
	for _, cat := range categories {
		catParts = append(catParts, "cat:"+cat)
	}
	q := "(" + strings.Join(catParts, "+OR+") + ")"

	if len(keywords) > 0 {
		kwParts := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			terms := strings.Fields(kw)
			kwParts = append(kwParts, "all:"+strings.Join(terms, "+"))
		}
		q += "+AND+(" + strings.Join(kwParts, "+OR+") + ")"
	}
	return q
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Published  string         `xml:"published"`
	Authors    []atomAuthor   `xml:"author"`
	Categories []atomCategory `xml:"category"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// extractID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
