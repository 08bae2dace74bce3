// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paperstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes every paper record, classification fields included,
// to papers/index/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	papers, err := s.ListAll(ctx, 0)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	path := filepath.Join(s.papersDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(papers)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every paper record to papers/index/export.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	papers, err := s.ListAll(ctx, 0)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	path := filepath.Join(s.papersDir, indexDir, "export.json")
	data, err := json.MarshalIndent(papers, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
