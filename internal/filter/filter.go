// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter selects which candidate papers to notify about.
package filter

import (
	"strings"

	"github.com/pdiddy/arxiv-alert/pkg/types"
)

// Apply returns the candidates worth notifying about: papers whose
// identifier is not in known and which pass the optional keyword rules.
// Input order is preserved because the candidate list arrives in recency
// order and some channels surface only a prefix of it.
//
// Apply has no failure mode: an empty rule list imposes no constraint,
// and a candidate with an empty identifier is dropped since it could
// never be deduplicated against the ledger.
func Apply(candidates []types.Paper, known map[string]struct{}, cfg types.FilterConfig) []types.Paper {
	var kept []types.Paper
	for _, p := range candidates {
		if p.ID == "" {
			continue
		}
		if _, sent := known[p.ID]; sent {
			continue
		}
		if !matchesAny(p.Title, cfg.TitleKeywords) {
			continue
		}
		if !matchesAny(p.Abstract, cfg.AbstractKeywords) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// matchesAny reports whether text contains at least one keyword as a
// case-insensitive substring. No keywords means no constraint.
func matchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	constrained := false
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		constrained = true
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return !constrained
}
