// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"time"
)

// ErrPaperNotFound is returned by repository lookups when the referenced
// paper ID does not exist. Callers test with errors.Is.
var ErrPaperNotFound = errors.New("paper not found")

// ConversionStatus indicates the state of PDF-to-Markdown conversion for a paper.
// Per prd002-conversion R4.4.
type ConversionStatus string

const (
	ConversionNone    ConversionStatus = "none"
	ConversionDone    ConversionStatus = "converted"
	ConversionPartial ConversionStatus = "partial"
	ConversionFailed  ConversionStatus = "failed"
)

// AnalysisStatus tracks a paper through the classification workflow.
// Papers enter as pending at acquisition; only the analysis workflow
// moves them between the remaining states. Per prd008-analysis R2.1.
type AnalysisStatus string

const (
	StatusPending      AnalysisStatus = "pending"
	StatusInProgress   AnalysisStatus = "in_progress"
	StatusCompleted    AnalysisStatus = "completed"
	StatusManualReview AnalysisStatus = "manual_review"
	StatusFailed       AnalysisStatus = "failed"
)

// Paper holds metadata, file paths, and classification state for an
// acquired paper. Per prd001-acquisition R3.2 and prd008-analysis R1.2.
// When AnalysisStatus is completed, the three classification fields and
// AnalysisConfidence are all set.
type Paper struct {
	// ID is a slug derived from the paper identifier (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// SourceURL is the URL from which the paper was downloaded.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// PDFPath is the local filesystem path to the downloaded PDF.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Date is the publication or preprint date.
	Date time.Time `json:"date" yaml:"date"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Categories lists subject category tags (e.g. arXiv "cs.LG").
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Source identifies which backend provided the PDF (e.g. "arxiv", "doi", "openalex", "url").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// ConversionStatus tracks whether the PDF has been converted to Markdown.
	ConversionStatus ConversionStatus `json:"conversion_status" yaml:"conversion_status"`

	// PaperType is the structural category assigned by classification.
	// Empty until the paper has been classified.
	PaperType PaperType `json:"paper_type,omitempty" yaml:"paper_type,omitempty"`

	// EvidenceStrength is the nature of support for the paper's claims.
	EvidenceStrength EvidenceStrength `json:"evidence_strength,omitempty" yaml:"evidence_strength,omitempty"`

	// PracticalApplicability is how close the contribution is to deployment.
	PracticalApplicability PracticalApplicability `json:"practical_applicability,omitempty" yaml:"practical_applicability,omitempty"`

	// AnalysisConfidence is the overall classification confidence in [0.1, 1.0].
	// Nil until the paper has been classified.
	AnalysisConfidence *float64 `json:"analysis_confidence,omitempty" yaml:"analysis_confidence,omitempty"`

	// AnalysisStatus is the paper's position in the classification workflow.
	AnalysisStatus AnalysisStatus `json:"analysis_status" yaml:"analysis_status"`

	// FullText is the converted Markdown body, loaded on demand by the
	// store. Never serialized with the metadata record.
	FullText string `json:"-" yaml:"-"`

	// UpdatedAt is the store-assigned time of the last persisted update.
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}
