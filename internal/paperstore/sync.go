// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paperstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-analyst/pkg/types"
)

// SyncSummary holds counts from a metadata sync run (R1.6).
type SyncSummary struct {
	Added   int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of metadata files processed.
func (s SyncSummary) Total() int {
	return s.Added + s.Updated + s.Skipped + s.Failed
}

// Sync reads metadata YAML files from papers/metadata/ and upserts paper
// rows. File mod times detect new, changed, and unchanged records for
// incremental updates. New papers enter the workflow as pending; a
// metadata update never touches an existing paper's classification
// fields or analysis status.
func (s *Store) Sync(ctx context.Context, w io.Writer) (SyncSummary, error) {
	metaDir := filepath.Join(s.papersDir, metadataDir)

	entries, err := os.ReadDir(metaDir)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("reading metadata directory %s: %w", metaDir, err)
	}

	var summary SyncSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		paperID := strings.TrimSuffix(entry.Name(), ".yaml")
		filePath := filepath.Join(metaDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", paperID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM sync_status WHERE paper_id = ?`, paperID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", paperID)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", paperID, err)
			summary.Failed++
			continue
		}

		var paper types.Paper
		if err := yaml.Unmarshal(data, &paper); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", paperID, err)
			summary.Failed++
			continue
		}
		if paper.ID == "" {
			paper.ID = paperID
		}

		if err := s.syncPaper(ctx, &paper, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", paperID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", paperID)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "added   %s\n", paperID)
			summary.Added++
		}
	}

	fmt.Fprintf(w, "\nadded: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Added, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

// syncPaper upserts the metadata columns of one paper inside a
// transaction, leaving any classification columns intact on update.
func (s *Store) syncPaper(ctx context.Context, paper *types.Paper, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	authorsJSON, categoriesJSON := encodeLists(paper)
	dateStr := ""
	if !paper.Date.IsZero() {
		dateStr = paper.Date.Format(time.RFC3339)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO papers (id, title, authors, date, abstract, categories,
			source_url, pdf_path, source, conversion_status, analysis_status, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending', ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, date=excluded.date,
			abstract=excluded.abstract, categories=excluded.categories,
			source_url=excluded.source_url, pdf_path=excluded.pdf_path,
			source=excluded.source, conversion_status=excluded.conversion_status,
			updated_at=excluded.updated_at`,
		paper.ID, paper.Title, authorsJSON, dateStr, paper.Abstract, categoriesJSON,
		paper.SourceURL, paper.PDFPath, paper.Source, string(paper.ConversionStatus), now,
	)
	if err != nil {
		return fmt.Errorf("upserting paper: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sync_status (paper_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(paper_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		paper.ID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating sync status: %w", err)
	}

	return tx.Commit()
}
