// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-alert/pkg/types"
)

const abstractPreviewLen = 300

// FormatDigest renders the plain-text notification body used by the
// email channel: a header line followed by one block per paper.
func FormatDigest(papers []types.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d new papers matching your criteria:\n\n", len(papers))
	for _, p := range papers {
		b.WriteString(formatPaper(p))
	}
	return b.String()
}

func formatPaper(p types.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", p.Title)
	fmt.Fprintf(&b, "Authors: %s\n", authorLine(p.Authors, 3))
	if !p.Published.IsZero() {
		fmt.Fprintf(&b, "Published: %s\n", p.Published.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "Categories: %s\n", strings.Join(p.Categories, ", "))
	fmt.Fprintf(&b, "URL: %s\n\n", p.URL)
	fmt.Fprintf(&b, "Abstract: %s\n", abstractPreview(p.Abstract))
	b.WriteString(strings.Repeat("=", 80))
	b.WriteString("\n")
	return b.String()
}

// authorLine joins up to max author names, appending "et al." when the
// list is longer.
func authorLine(authors []string, max int) string {
	if len(authors) <= max {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:max], ", ") + " et al."
}

func abstractPreview(abstract string) string {
	if len(abstract) <= abstractPreviewLen {
		return abstract
	}
	return abstract[:abstractPreviewLen] + "..."
}
