// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"math"
	"strings"

	"github.com/pdiddy/paper-analyst/pkg/types"
)

// evidenceDivisor converts a raw occurrence score into a confidence:
// five weighted pattern hits saturate the scale (R4.2).
const evidenceDivisor = 5.0

// scoreEvidence evaluates every evidence-strength candidate by summing
// weighted pattern occurrences in the aggregated text. The highest raw
// score wins; zero signal returns the theoretical default at the floor
// confidence (R4.3).
func (c *Classifier) scoreEvidence(text string) (types.EvidenceStrength, float64) {
	best := types.EvidenceTheoretical
	bestScore := 0.0

	for _, g := range c.evidenceRules {
		score := 0.0
		for _, pat := range g.Patterns {
			score += float64(strings.Count(text, pat)) * g.Weight
		}
		if score > bestScore {
			best = types.EvidenceStrength(g.Label)
			bestScore = score
		}
	}

	if bestScore <= 0 {
		return types.EvidenceTheoretical, minConfidence
	}

	confidence := math.Min(bestScore/evidenceDivisor, 1.0)
	if confidence < minConfidence {
		confidence = minConfidence
	}
	return best, confidence
}
