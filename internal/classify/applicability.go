// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"math"
	"strings"

	"github.com/pdiddy/paper-analyst/pkg/types"
)

// applicabilityDivisor converts a raw occurrence score into a
// confidence. Applicability vocabulary is sparser than evidence
// vocabulary, so three hits saturate the scale (R4.4).
const applicabilityDivisor = 3.0

// scoreApplicability evaluates every applicability candidate by summing
// weighted pattern occurrences in the aggregated text. The highest raw
// score wins; zero signal returns the medium default at the floor
// confidence (R4.5).
func (c *Classifier) scoreApplicability(text string) (types.PracticalApplicability, float64) {
	best := types.ApplicabilityMedium
	bestScore := 0.0

	for _, g := range c.applicabilityRules {
		score := 0.0
		for _, pat := range g.Patterns {
			score += float64(strings.Count(text, pat)) * g.Weight
		}
		if score > bestScore {
			best = types.PracticalApplicability(g.Label)
			bestScore = score
		}
	}

	if bestScore <= 0 {
		return types.ApplicabilityMedium, minConfidence
	}

	confidence := math.Min(bestScore/applicabilityDivisor, 1.0)
	if confidence < minConfidence {
		confidence = minConfidence
	}
	return best, confidence
}
