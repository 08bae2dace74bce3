// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PaperType is the structural category of a paper's contribution.
// Per prd007-classification R1.1. The declaration order of the
// AllPaperTypes slice fixes tie-break order during scoring.
type PaperType string

const (
	TypeConceptualFramework PaperType = "conceptual_framework"
	TypeSurveyReview        PaperType = "survey_review"
	TypeEmpiricalStudy      PaperType = "empirical_study"
	TypeCaseStudy           PaperType = "case_study"
	TypeBenchmarkComparison PaperType = "benchmark_comparison"
	TypePositionPaper       PaperType = "position_paper"
	TypeTutorialMethodology PaperType = "tutorial_methodology"
)

// AllPaperTypes lists every paper type in declaration order.
func AllPaperTypes() []PaperType {
	return []PaperType{
		TypeConceptualFramework,
		TypeSurveyReview,
		TypeEmpiricalStudy,
		TypeCaseStudy,
		TypeBenchmarkComparison,
		TypePositionPaper,
		TypeTutorialMethodology,
	}
}

// EvidenceStrength is the nature of support offered for a paper's claims.
// Per prd007-classification R1.2.
type EvidenceStrength string

const (
	EvidenceExperimental  EvidenceStrength = "experimental"
	EvidenceTheoretical   EvidenceStrength = "theoretical"
	EvidenceObservational EvidenceStrength = "observational"
	EvidenceAnecdotal     EvidenceStrength = "anecdotal"
)

// AllEvidenceStrengths lists every evidence strength in declaration order.
func AllEvidenceStrengths() []EvidenceStrength {
	return []EvidenceStrength{
		EvidenceExperimental,
		EvidenceTheoretical,
		EvidenceObservational,
		EvidenceAnecdotal,
	}
}

// PracticalApplicability is how close a paper's contribution is to
// real-world deployability. Per prd007-classification R1.3.
type PracticalApplicability string

const (
	ApplicabilityHigh            PracticalApplicability = "high"
	ApplicabilityMedium          PracticalApplicability = "medium"
	ApplicabilityLow             PracticalApplicability = "low"
	ApplicabilityTheoreticalOnly PracticalApplicability = "theoretical_only"
)

// AllApplicabilities lists every applicability level in declaration order.
func AllApplicabilities() []PracticalApplicability {
	return []PracticalApplicability{
		ApplicabilityHigh,
		ApplicabilityMedium,
		ApplicabilityLow,
		ApplicabilityTheoreticalOnly,
	}
}

// ClassificationResult is the transient outcome of classifying one paper.
// It is never persisted as its own record; the workflow copies its fields
// onto the Paper. Per prd007-classification R4.
type ClassificationResult struct {
	PaperType              PaperType              `json:"paper_type" yaml:"paper_type"`
	EvidenceStrength       EvidenceStrength       `json:"evidence_strength" yaml:"evidence_strength"`
	PracticalApplicability PracticalApplicability `json:"practical_applicability" yaml:"practical_applicability"`

	// TypeConfidence, EvidenceConfidence, and ApplicabilityConfidence
	// are the per-taxonomy confidences, each in [0.1, 1.0].
	TypeConfidence          float64 `json:"type_confidence" yaml:"type_confidence"`
	EvidenceConfidence      float64 `json:"evidence_confidence" yaml:"evidence_confidence"`
	ApplicabilityConfidence float64 `json:"applicability_confidence" yaml:"applicability_confidence"`

	// OverallConfidence is the unweighted mean of the three confidences.
	OverallConfidence float64 `json:"overall_confidence" yaml:"overall_confidence"`

	// Diagnostic metadata about the analyzed input.
	AnalyzedChars int      `json:"analyzed_chars" yaml:"analyzed_chars"`
	HadAbstract   bool     `json:"had_abstract" yaml:"had_abstract"`
	Categories    []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}
