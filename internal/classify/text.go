// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strings"

	"github.com/pdiddy/paper-analyst/pkg/types"
)

// Aggregation weights and full-text sampling parameters (R2.1-R2.4).
// Title and abstract are weighted by duplication; the full text is
// sampled rather than scanned whole to bound cost on long documents.
const (
	titleCopies    = 3
	abstractCopies = 2

	introFraction      = 0.20
	conclusionFraction = 0.15
	middleStartFrac    = 0.30
	middleEndFrac      = 0.70
	middleStride       = 10
)

// Aggregate builds the single lowercase analysis string all three
// scorers share. Title appears 3x and abstract 2x; categories join as
// one segment; full text contributes an introduction proxy (first 20%),
// a conclusion proxy (last 15%), and a down-sampled middle slice. When
// no full text exists the title gains one extra copy and the abstract
// half a copy more, leaning harder on the metadata signal (R2.5).
// A paper with no title, abstract, or full text yields "".
func Aggregate(p *types.Paper) string {
	title := strings.TrimSpace(p.Title)
	abstract := strings.TrimSpace(p.Abstract)
	full := p.FullText

	var segments []string
	for i := 0; i < titleCopies; i++ {
		if title != "" {
			segments = append(segments, title)
		}
	}
	for i := 0; i < abstractCopies; i++ {
		if abstract != "" {
			segments = append(segments, abstract)
		}
	}
	if len(p.Categories) > 0 {
		segments = append(segments, strings.Join(p.Categories, " "))
	}

	if full != "" {
		runes := []rune(full)
		n := len(runes)

		introEnd := int(float64(n) * introFraction)
		if intro := strings.TrimSpace(string(runes[:introEnd])); intro != "" {
			segments = append(segments, intro)
		}

		conclStart := n - int(float64(n)*conclusionFraction)
		if concl := strings.TrimSpace(string(runes[conclStart:])); concl != "" {
			segments = append(segments, concl)
		}

		if middle := sampleMiddle(runes); middle != "" {
			segments = append(segments, middle)
		}
	} else {
		// No full text: one extra title copy and 1.5 extra abstract copies.
		if title != "" {
			segments = append(segments, title)
		}
		if abstract != "" {
			segments = append(segments, abstract)
			segments = append(segments, firstHalf(abstract))
		}
	}

	return strings.ToLower(strings.Join(segments, " "))
}

// sampleMiddle extracts the 30%-70% slice of the text and keeps every
// 10th whitespace-delimited token. Sampling at token boundaries keeps
// the 1:10 ratio without splitting codepoints or words, which would
// corrupt substring matching.
func sampleMiddle(runes []rune) string {
	n := len(runes)
	start := int(float64(n) * middleStartFrac)
	end := int(float64(n) * middleEndFrac)
	if start >= end {
		return ""
	}

	tokens := strings.Fields(string(runes[start:end]))
	var kept []string
	for i := 0; i < len(tokens); i += middleStride {
		kept = append(kept, tokens[i])
	}
	return strings.Join(kept, " ")
}

// firstHalf returns the leading half of s at a rune boundary.
func firstHalf(s string) string {
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:len(runes)/2]))
}
