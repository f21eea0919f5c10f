// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes all ledger entries to w as a YAML document,
// most recent first.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	entries, err := s.Entries(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(entries)
}

// ExportJSON writes all ledger entries to w as indented JSON,
// most recent first.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	entries, err := s.Entries(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
