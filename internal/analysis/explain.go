// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"fmt"
	"strings"

	"github.com/pdiddy/paper-analyst/pkg/types"
)

// Qualifier sentences keyed by confidence band. Fixed text so the
// explanation is deterministic for a given result (R6.4).
const (
	qualifierHigh   = "High confidence in this classification."
	qualifierMedium = "Medium confidence; spot-check recommended for critical use."
	qualifierLow    = "Low confidence; may need manual review."
)

// Explanation renders a classification result as one human-readable
// line: the assigned type with its confidence percentage, followed by a
// band qualifier.
func Explanation(r types.ClassificationResult) string {
	var qualifier string
	switch {
	case r.OverallConfidence > 0.8:
		qualifier = qualifierHigh
	case r.OverallConfidence > 0.5:
		qualifier = qualifierMedium
	default:
		qualifier = qualifierLow
	}

	return fmt.Sprintf("Classified as %s with %.0f%% confidence. %s",
		typeLabel(r.PaperType), r.OverallConfidence*100, qualifier)
}

// typeLabel renders an enum value for humans: "survey_review" becomes
// "Survey Review".
func typeLabel(t types.PaperType) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
