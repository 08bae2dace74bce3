// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/paper-analyst/pkg/types"
)

func TestAggregateMetadataOnly(t *testing.T) {
	p := &types.Paper{
		Title:    "Zebra Protocol",
		Abstract: "alpha beta gamma delta",
	}

	agg := Aggregate(p)

	// Without full text the title gets an extra copy (3 + 1).
	if got := strings.Count(agg, "zebra"); got != 4 {
		t.Errorf("title occurrences = %d, want 4", got)
	}
	// The abstract gets a full extra copy plus its first half (2 + 1 + half).
	if got := strings.Count(agg, "alpha"); got != 4 {
		t.Errorf("leading abstract token occurrences = %d, want 4", got)
	}
	if got := strings.Count(agg, "delta"); got != 3 {
		t.Errorf("trailing abstract token occurrences = %d, want 3", got)
	}
}

func TestAggregateLowercases(t *testing.T) {
	p := &types.Paper{Title: "MIXED Case TITLE"}
	agg := Aggregate(p)
	if agg != strings.ToLower(agg) {
		t.Errorf("aggregated text not lowercase: %q", agg)
	}
}

func TestAggregateCategories(t *testing.T) {
	p := &types.Paper{
		Title:      "Some Paper",
		Categories: []string{"cs.LG", "cs.AI"},
	}
	agg := Aggregate(p)
	if !strings.Contains(agg, "cs.lg") || !strings.Contains(agg, "cs.ai") {
		t.Errorf("aggregated text missing categories: %q", agg)
	}
	// Categories join as a single segment, so they appear exactly once.
	if got := strings.Count(agg, "cs.lg"); got != 1 {
		t.Errorf("category occurrences = %d, want 1", got)
	}
}

func TestAggregateEmptyPaper(t *testing.T) {
	if got := Aggregate(&types.Paper{}); got != "" {
		t.Errorf("Aggregate(empty) = %q, want \"\"", got)
	}
}

func TestAggregateFullTextWeights(t *testing.T) {
	p := &types.Paper{
		Title:    "Zebra Protocol",
		Abstract: "alpha beta gamma",
		FullText: "intro body conclusion",
	}

	agg := Aggregate(p)

	// With full text present, no extra metadata copies are added.
	if got := strings.Count(agg, "zebra"); got != 3 {
		t.Errorf("title occurrences = %d, want 3", got)
	}
	if got := strings.Count(agg, "alpha"); got != 2 {
		t.Errorf("abstract token occurrences = %d, want 2", got)
	}
}

// fullTextOfWords builds a full text of n fixed-width words ("w000x w001x
// ...") so slice boundaries land at predictable rune offsets.
func fullTextOfWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%03dx", i)
	}
	return strings.Join(words, " ")
}

func TestAggregateFullTextSampling(t *testing.T) {
	p := &types.Paper{FullText: fullTextOfWords(100)}

	agg := Aggregate(p)

	// First 20% is the introduction proxy.
	if !strings.Contains(agg, "w001") {
		t.Error("introduction slice missing from aggregated text")
	}
	// Last 15% is the conclusion proxy.
	if !strings.Contains(agg, "w090") {
		t.Error("conclusion slice missing from aggregated text")
	}
	// The 20%-30% gap is never sampled.
	if strings.Contains(agg, "w025") {
		t.Error("text between introduction and middle slice should be dropped")
	}
	// The middle slice keeps every 10th token only.
	if !strings.Contains(agg, "w030") || !strings.Contains(agg, "w040") {
		t.Error("middle slice should keep every 10th token")
	}
	if strings.Contains(agg, "w031") {
		t.Error("middle slice should drop tokens between samples")
	}
}

func TestSampleMiddleShortText(t *testing.T) {
	if got := sampleMiddle([]rune("a")); got != "" {
		t.Errorf("sampleMiddle(short) = %q, want \"\"", got)
	}
}
