// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"testing"

	"github.com/pdiddy/arxiv-alert/pkg/types"
)

func papers(ids ...string) []types.Paper {
	var ps []types.Paper
	for _, id := range ids {
		ps = append(ps, types.Paper{ID: id, Title: "Paper " + id})
	}
	return ps
}

func ids(ps []types.Paper) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func known(set ...string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, id := range set {
		m[id] = struct{}{}
	}
	return m
}

func TestApplyDropsKnownIdentifiers(t *testing.T) {
	got := Apply(papers("a", "b", "c"), known("b"), types.FilterConfig{})
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("Apply() = %v, want [a c]", ids(got))
	}
}

func TestApplyPreservesInputOrder(t *testing.T) {
	got := Apply(papers("c", "a", "d", "b"), known("a"), types.FilterConfig{})
	want := []string{"c", "d", "b"}
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("Apply() = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Errorf("Apply()[%d] = %s, want %s (order must be preserved)", i, gotIDs[i], want[i])
		}
	}
}

func TestApplyOpenFilterKeepsEverythingUnknown(t *testing.T) {
	in := papers("a", "b")
	got := Apply(in, known(), types.FilterConfig{})
	if len(got) != 2 {
		t.Errorf("Apply() kept %d papers, want 2", len(got))
	}
}

func TestApplyDropsEmptyIdentifier(t *testing.T) {
	in := []types.Paper{{ID: "", Title: "no id"}, {ID: "a"}}
	got := Apply(in, known(), types.FilterConfig{})
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("Apply() = %v, want [a]", ids(got))
	}
}

func TestTitleKeywords(t *testing.T) {
	paper := types.Paper{ID: "2401.00001", Title: "Efficient Transformers"}

	tests := []struct {
		name     string
		keywords []string
		want     int
	}{
		{"case-insensitive substring match", []string{"transformer"}, 1},
		{"no match rejects", []string{"diffusion"}, 0},
		{"any-of semantics", []string{"diffusion", "TRANSFORMER"}, 1},
		{"empty list is open", nil, 1},
		{"blank keywords degrade to open", []string{"", "  "}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := types.FilterConfig{TitleKeywords: tt.keywords}
			got := Apply([]types.Paper{paper}, known(), cfg)
			if len(got) != tt.want {
				t.Errorf("Apply() kept %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestAbstractKeywords(t *testing.T) {
	in := []types.Paper{
		{ID: "a", Abstract: "We study retrieval-augmented generation."},
		{ID: "b", Abstract: "A survey of reinforcement learning."},
	}
	cfg := types.FilterConfig{AbstractKeywords: []string{"retrieval"}}
	got := Apply(in, known(), cfg)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("Apply() = %v, want [a]", ids(got))
	}
}

func TestTitleAndAbstractRulesBothApply(t *testing.T) {
	in := []types.Paper{
		{ID: "a", Title: "Transformers", Abstract: "vision"},
		{ID: "b", Title: "Transformers", Abstract: "language"},
		{ID: "c", Title: "Diffusion", Abstract: "language"},
	}
	cfg := types.FilterConfig{
		TitleKeywords:    []string{"transformer"},
		AbstractKeywords: []string{"language"},
	}
	got := Apply(in, known(), cfg)
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("Apply() = %v, want [b]", ids(got))
	}
}

func TestApplyTwiceIsEmpty(t *testing.T) {
	in := papers("a", "b")
	first := Apply(in, known(), types.FilterConfig{})

	// Simulate the commit step recording the first run's output.
	sent := known()
	for _, p := range first {
		sent[p.ID] = struct{}{}
	}

	second := Apply(in, sent, types.FilterConfig{})
	if len(second) != 0 {
		t.Errorf("second Apply() = %v, want empty", ids(second))
	}
}
