// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"context"
	"fmt"

	"github.com/pdiddy/paper-analyst/pkg/types"
)

// ConfidenceBuckets is a histogram of stored confidences over all
// papers: high at or above the auto-approve threshold, medium between
// the two thresholds, low below manual review, none for papers that
// have never been classified (R6.3).
type ConfidenceBuckets struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
	None   int `json:"none" yaml:"none"`
}

// Stats aggregates classification state across the whole store (R6.1).
type Stats struct {
	Totals          Totals                               `json:"totals" yaml:"totals"`
	ByStatus        map[types.AnalysisStatus]int         `json:"by_status" yaml:"by_status"`
	ByType          map[types.PaperType]int              `json:"by_type" yaml:"by_type"`
	ByEvidence      map[types.EvidenceStrength]int       `json:"by_evidence" yaml:"by_evidence"`
	ByApplicability map[types.PracticalApplicability]int `json:"by_applicability" yaml:"by_applicability"`
	Confidence      ConfidenceBuckets                    `json:"confidence" yaml:"confidence"`
}

// Stats walks every paper in the store, not just classified ones, and
// tallies status, taxonomy, and confidence-bucket counts.
func (wf *Workflow) Stats(ctx context.Context) (Stats, error) {
	totals, err := wf.repo.Statistics(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("reading store statistics: %w", err)
	}

	papers, err := wf.repo.ListAll(ctx, 0)
	if err != nil {
		return Stats{}, fmt.Errorf("listing papers: %w", err)
	}

	stats := Stats{
		Totals:          totals,
		ByStatus:        make(map[types.AnalysisStatus]int),
		ByType:          make(map[types.PaperType]int),
		ByEvidence:      make(map[types.EvidenceStrength]int),
		ByApplicability: make(map[types.PracticalApplicability]int),
	}

	for _, p := range papers {
		stats.ByStatus[p.AnalysisStatus]++
		if p.PaperType != "" {
			stats.ByType[p.PaperType]++
		}
		if p.EvidenceStrength != "" {
			stats.ByEvidence[p.EvidenceStrength]++
		}
		if p.PracticalApplicability != "" {
			stats.ByApplicability[p.PracticalApplicability]++
		}

		switch {
		case p.AnalysisConfidence == nil:
			stats.Confidence.None++
		case *p.AnalysisConfidence >= wf.cfg.AutoApproveThreshold:
			stats.Confidence.High++
		case *p.AnalysisConfidence >= wf.cfg.ManualReviewThreshold:
			stats.Confidence.Medium++
		default:
			stats.Confidence.Low++
		}
	}

	return stats, nil
}
