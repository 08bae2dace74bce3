// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"math"
	"strings"

	"github.com/pdiddy/paper-analyst/pkg/types"
)

// Type scorer parameters (R3.1-R3.5).
const (
	titlePatternScore    = 3.0
	abstractPatternScore = 2.0
	crossFieldBonus      = 1.0
	indicatorBonus       = 1.0
	indicatorBonusFloor  = 5

	// Indicator occurrences count for more when the aggregated text is
	// long enough to carry full-text signal.
	fullTextThreshold    = 10000
	fullIndicatorWeight  = 1.0
	shortIndicatorWeight = 0.5

	// Confidence scaling: longer analyzed text raises confidence, up to
	// a 1.5x cap reached at 7500 characters.
	lengthFactorDivisor = 5000.0
	lengthFactorCap     = 1.5

	// minConfidence is the floor below which the scorer falls back to
	// the default label.
	minConfidence = 0.1
)

// scoreType evaluates every paper-type candidate against the aggregated
// text and returns the best candidate with its confidence. Candidates
// are scored independently against their own rule counts; the winner is
// the highest normalized raw score, with enum declaration order breaking
// ties. A zero-signal text returns the empirical-study default at the
// floor confidence (R3.6).
func (c *Classifier) scoreType(text string) (types.PaperType, float64) {
	indicatorWeight := shortIndicatorWeight
	if len(text) > fullTextThreshold {
		indicatorWeight = fullIndicatorWeight
	}

	best := types.TypeEmpiricalStudy
	bestScore := 0.0

	for _, g := range c.typeRules {
		raw := 0.0
		titleHits, abstractHits, occurrences := 0, 0, 0

		for _, pat := range g.TitlePatterns {
			if strings.Contains(text, pat) {
				raw += titlePatternScore
				titleHits++
			}
		}
		for _, pat := range g.AbstractPatterns {
			if strings.Contains(text, pat) {
				raw += abstractPatternScore
				abstractHits++
			}
		}
		for _, ind := range g.Indicators {
			occ := strings.Count(text, ind)
			occurrences += occ
			raw += float64(occ) * indicatorWeight
		}

		// Cross-field corroboration and indicator-density bonuses.
		if titleHits > 0 && abstractHits > 0 {
			raw += crossFieldBonus
		}
		if occurrences > indicatorBonusFloor {
			raw += indicatorBonus
		}

		// Fixed per-candidate denominator: the candidate's own rule counts.
		denom := float64(len(g.TitlePatterns) + len(g.AbstractPatterns) + len(g.Indicators))
		if denom == 0 {
			continue
		}
		normalized := raw * g.Weight / denom

		if normalized > bestScore {
			best = g.Type
			bestScore = normalized
		}
	}

	if bestScore <= 0 {
		return types.TypeEmpiricalStudy, minConfidence
	}

	factor := math.Min(float64(len(text))/lengthFactorDivisor, lengthFactorCap)
	confidence := math.Min(bestScore*factor, 1.0)
	if confidence < minConfidence {
		return types.TypeEmpiricalStudy, minConfidence
	}
	return best, confidence
}
