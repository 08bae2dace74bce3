// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paperstore persists papers and their classification state in
// SQLite and implements the analysis workflow's repository contract.
// Implements: prd008-analysis (R1);
//
//	docs/ARCHITECTURE § Paper Store.
package paperstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-analyst/internal/analysis"
	"github.com/pdiddy/paper-analyst/pkg/types"
)

const (
	indexDir    = "index"
	metadataDir = "metadata"
	markdownDir = "markdown"
	dbFile      = "papers.db"
)

// Store manages the paper database. It satisfies analysis.Repository.
type Store struct {
	db        *sql.DB
	papersDir string
}

// NewStore opens or creates the paper database at
// papersDir/index/papers.db, creating the schema if needed (R1.2).
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.PapersDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, papersDir: cfg.PapersDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			title TEXT,
			authors TEXT,
			date TEXT,
			abstract TEXT,
			categories TEXT,
			source_url TEXT,
			pdf_path TEXT,
			source TEXT,
			conversion_status TEXT,
			paper_type TEXT,
			evidence_strength TEXT,
			practical_applicability TEXT,
			analysis_confidence REAL,
			analysis_status TEXT NOT NULL DEFAULT 'pending',
			updated_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_analysis_status ON papers(analysis_status)`,
		`CREATE TABLE IF NOT EXISTS sync_status (
			paper_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

const paperColumns = `id, title, authors, date, abstract, categories,
	source_url, pdf_path, source, conversion_status,
	paper_type, evidence_strength, practical_applicability,
	analysis_confidence, analysis_status, updated_at`

// GetByID loads one paper. When the paper has a converted Markdown file
// under papers/markdown/, its body is loaded into FullText so the
// classifier can sample it. Absent IDs return types.ErrPaperNotFound.
func (s *Store) GetByID(ctx context.Context, id string) (*types.Paper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paperColumns+` FROM papers WHERE id = ?`, id)

	paper, err := scanPaper(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", types.ErrPaperNotFound, id)
		}
		return nil, fmt.Errorf("loading paper %s: %w", id, err)
	}

	if paper.ConversionStatus == types.ConversionDone || paper.ConversionStatus == types.ConversionPartial {
		mdPath := filepath.Join(s.papersDir, markdownDir, paper.ID+".md")
		if data, readErr := os.ReadFile(mdPath); readErr == nil {
			paper.FullText = string(data)
		}
	}
	return paper, nil
}

// Update upserts the whole paper row, including the classification
// fields, confidence, and status, as one write with a store-assigned
// update timestamp (R1.4).
func (s *Store) Update(ctx context.Context, p *types.Paper) (*types.Paper, error) {
	authorsJSON, categoriesJSON := encodeLists(p)
	dateStr := ""
	if !p.Date.IsZero() {
		dateStr = p.Date.Format(time.RFC3339)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO papers (id, title, authors, date, abstract, categories,
			source_url, pdf_path, source, conversion_status,
			paper_type, evidence_strength, practical_applicability,
			analysis_confidence, analysis_status, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, date=excluded.date,
			abstract=excluded.abstract, categories=excluded.categories,
			source_url=excluded.source_url, pdf_path=excluded.pdf_path,
			source=excluded.source, conversion_status=excluded.conversion_status,
			paper_type=excluded.paper_type,
			evidence_strength=excluded.evidence_strength,
			practical_applicability=excluded.practical_applicability,
			analysis_confidence=excluded.analysis_confidence,
			analysis_status=excluded.analysis_status,
			updated_at=excluded.updated_at`,
		p.ID, p.Title, authorsJSON, dateStr, p.Abstract, categoriesJSON,
		p.SourceURL, p.PDFPath, p.Source, string(p.ConversionStatus),
		nullIfEmpty(string(p.PaperType)), nullIfEmpty(string(p.EvidenceStrength)),
		nullIfEmpty(string(p.PracticalApplicability)),
		nullableFloat(p.AnalysisConfidence), string(statusOrPending(p.AnalysisStatus)), now,
	)
	if err != nil {
		return nil, fmt.Errorf("upserting paper %s: %w", p.ID, err)
	}
	return s.GetByID(ctx, p.ID)
}

// UpdateStatus sets the analysis status of one paper. A non-nil
// confidence replaces the stored value; nil leaves it unchanged.
// Absent IDs return types.ErrPaperNotFound (R1.5).
func (s *Store) UpdateStatus(ctx context.Context, id string, status types.AnalysisStatus, confidence *float64) (*types.Paper, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(ctx,
		`UPDATE papers
		 SET analysis_status = ?,
			analysis_confidence = COALESCE(?, analysis_confidence),
			updated_at = ?
		 WHERE id = ?`,
		string(status), nullableFloat(confidence), now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating status of %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrPaperNotFound, id)
	}
	return s.GetByID(ctx, id)
}

// ListByStatus returns papers in the given analysis status, ordered by
// ID for deterministic batches. A non-positive limit means no cap.
func (s *Store) ListByStatus(ctx context.Context, status types.AnalysisStatus, limit int) ([]types.Paper, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paperColumns+` FROM papers WHERE analysis_status = ? ORDER BY id LIMIT ?`,
		string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("listing papers by status: %w", err)
	}
	return collectPapers(rows)
}

// ListAll returns every paper, ordered by ID. A non-positive limit
// means no cap. Full text is not loaded for listings.
func (s *Store) ListAll(ctx context.Context, limit int) ([]types.Paper, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paperColumns+` FROM papers ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	return collectPapers(rows)
}

// Statistics reports store-level counters (R6.2).
func (s *Store) Statistics(ctx context.Context) (analysis.Totals, error) {
	var t analysis.Totals
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*),
			count(CASE WHEN analysis_status = 'completed' THEN 1 END),
			count(CASE WHEN analysis_status = 'pending' THEN 1 END),
			count(CASE WHEN conversion_status = 'converted' THEN 1 END)
		 FROM papers`,
	).Scan(&t.TotalPapers, &t.AnalyzedPapers, &t.PendingPapers, &t.ConvertedPapers)
	if err != nil {
		return analysis.Totals{}, fmt.Errorf("reading statistics: %w", err)
	}
	return t, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanPaper.
type scanner interface {
	Scan(dest ...any) error
}

func scanPaper(row scanner) (*types.Paper, error) {
	var (
		p              types.Paper
		authorsJSON    sql.NullString
		dateStr        sql.NullString
		categoriesJSON sql.NullString
		conversion     sql.NullString
		paperType      sql.NullString
		evidence       sql.NullString
		applicability  sql.NullString
		confidence     sql.NullFloat64
		status         sql.NullString
		updatedAt      sql.NullString
	)

	if err := row.Scan(
		&p.ID, &p.Title, &authorsJSON, &dateStr, &p.Abstract, &categoriesJSON,
		&p.SourceURL, &p.PDFPath, &p.Source, &conversion,
		&paperType, &evidence, &applicability,
		&confidence, &status, &updatedAt,
	); err != nil {
		return nil, err
	}

	if authorsJSON.Valid {
		json.Unmarshal([]byte(authorsJSON.String), &p.Authors)
	}
	if categoriesJSON.Valid {
		json.Unmarshal([]byte(categoriesJSON.String), &p.Categories)
	}
	if dateStr.Valid && dateStr.String != "" {
		if t, err := time.Parse(time.RFC3339, dateStr.String); err == nil {
			p.Date = t
		}
	}
	if conversion.Valid {
		p.ConversionStatus = types.ConversionStatus(conversion.String)
	}
	if paperType.Valid {
		p.PaperType = types.PaperType(paperType.String)
	}
	if evidence.Valid {
		p.EvidenceStrength = types.EvidenceStrength(evidence.String)
	}
	if applicability.Valid {
		p.PracticalApplicability = types.PracticalApplicability(applicability.String)
	}
	if confidence.Valid {
		c := confidence.Float64
		p.AnalysisConfidence = &c
	}
	if status.Valid {
		p.AnalysisStatus = types.AnalysisStatus(status.String)
	}
	if updatedAt.Valid && updatedAt.String != "" {
		if t, err := time.Parse(time.RFC3339Nano, updatedAt.String); err == nil {
			p.UpdatedAt = t
		}
	}
	return &p, nil
}

func collectPapers(rows *sql.Rows) ([]types.Paper, error) {
	defer rows.Close()
	var papers []types.Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		papers = append(papers, *p)
	}
	return papers, rows.Err()
}

// encodeLists marshals the authors and categories slices for storage.
func encodeLists(p *types.Paper) (authorsJSON, categoriesJSON string) {
	a, _ := json.Marshal(p.Authors)
	c, _ := json.Marshal(p.Categories)
	return string(a), string(c)
}

// nullIfEmpty maps "" to NULL so unclassified papers store NULL taxonomy
// columns instead of empty strings.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func statusOrPending(status types.AnalysisStatus) types.AnalysisStatus {
	if status == "" {
		return types.StatusPending
	}
	return status
}
