// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-alert pipeline.
package types

import "time"

// Paper holds the metadata for one candidate paper returned by an arXiv
// query. Papers are immutable once fetched; each run builds a fresh set.
// The JSON tags define the outbound webhook payload shape, so changing
// them breaks webhook consumers.
type Paper struct {
	// ID is the arXiv identifier with any version suffix stripped
	// (e.g. "2301.07041"). Stable across runs; the ledger keys on it.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the API.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the submission date reported by arXiv.
	Published time.Time `json:"published" yaml:"published"`

	// Categories lists the arXiv categories (e.g. "cs.AI", "cs.LG").
	Categories []string `json:"categories" yaml:"categories"`

	// URL is the canonical abstract page URL.
	URL string `json:"url" yaml:"url"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`
}
