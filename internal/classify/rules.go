// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify implements the rule-based paper classification engine:
// weighted text aggregation and independent scoring across the paper-type,
// evidence-strength, and applicability taxonomies.
// Implements: prd007-classification (R1-R5);
//
//	docs/ARCHITECTURE § Classification.
package classify

import "github.com/pdiddy/paper-analyst/pkg/types"

// RulesVersion identifies the rule table revision. Bump when pattern
// groups change so stored confidences can be traced to the table that
// produced them.
const RulesVersion = "2026.02"

// TypeRuleGroup holds the pattern sets for one paper-type candidate.
// Patterns are lowercase substrings matched against the aggregated text;
// title and abstract patterns are presence-scored, indicators are
// occurrence-counted. Weight is reserved for tuning and is 1.0 throughout.
type TypeRuleGroup struct {
	Type             types.PaperType
	TitlePatterns    []string
	AbstractPatterns []string
	Indicators       []string
	Weight           float64
}

// LabelRuleGroup holds the occurrence-counted pattern set for one
// evidence-strength or applicability candidate.
type LabelRuleGroup struct {
	Label    string
	Patterns []string
	Weight   float64
}

// defaultTypeRules returns the paper-type rule table in declaration
// order of types.AllPaperTypes. Iteration order is the tie-break order,
// so the table is a slice, not a map.
func defaultTypeRules() []TypeRuleGroup {
	return []TypeRuleGroup{
		{
			Type: types.TypeConceptualFramework,
			TitlePatterns: []string{
				"framework", "a theory of", "towards", "conceptual model", "foundations of",
			},
			AbstractPatterns: []string{
				"we propose a framework", "conceptual framework", "theoretical framework",
				"we introduce a model", "unifying view",
			},
			Indicators: []string{"framework", "concept", "theory", "principle", "formalism"},
			Weight:     1.0,
		},
		{
			Type: types.TypeSurveyReview,
			TitlePatterns: []string{
				"survey", "review", "overview", "a taxonomy of", "systematic literature",
			},
			AbstractPatterns: []string{
				"comprehensive overview", "we review", "review recent advances",
				"this survey", "systematic review", "we summarize the state",
			},
			Indicators: []string{"survey", "review", "taxonomy", "literature", "categorize"},
			Weight:     1.0,
		},
		{
			Type: types.TypeEmpiricalStudy,
			TitlePatterns: []string{
				"an empirical study", "empirical analysis", "measuring", "an analysis of",
				"understanding the",
			},
			AbstractPatterns: []string{
				"we conduct an empirical", "empirical study", "our experiments show",
				"we evaluate", "we analyze data",
			},
			Indicators: []string{"experiment", "dataset", "measurement", "statistical", "finding"},
			Weight:     1.0,
		},
		{
			Type: types.TypeCaseStudy,
			TitlePatterns: []string{
				"case study", "a case of", "lessons learned", "in practice", "deploying",
			},
			AbstractPatterns: []string{
				"case study", "real-world deployment", "we deployed", "in production",
				"our experience with",
			},
			Indicators: []string{"deployment", "production", "company", "customer", "real-world"},
			Weight:     1.0,
		},
		{
			Type: types.TypeBenchmarkComparison,
			TitlePatterns: []string{
				"benchmark", "comparison", "comparing", "versus", "evaluation of",
			},
			AbstractPatterns: []string{
				"we benchmark", "we compare", "comparative evaluation", "against baselines",
				"state-of-the-art methods",
			},
			Indicators: []string{"benchmark", "baseline", "comparison", "metric", "outperform"},
			Weight:     1.0,
		},
		{
			Type: types.TypePositionPaper,
			TitlePatterns: []string{
				"position paper", "a perspective on", "rethinking", "the case for", "why we",
			},
			AbstractPatterns: []string{
				"we argue", "position paper", "this paper argues", "we advocate",
				"call to action",
			},
			Indicators: []string{"argue", "opinion", "perspective", "debate", "stance"},
			Weight:     1.0,
		},
		{
			Type: types.TypeTutorialMethodology,
			TitlePatterns: []string{
				"tutorial", "a guide to", "how to", "methodology", "a primer",
			},
			AbstractPatterns: []string{
				"step-by-step", "we describe how", "practical guide", "this tutorial",
				"methodology for",
			},
			Indicators: []string{"tutorial", "guide", "step", "practitioner", "walkthrough"},
			Weight:     1.0,
		},
	}
}

// defaultEvidenceRules returns the evidence-strength rule table in
// declaration order of types.AllEvidenceStrengths.
func defaultEvidenceRules() []LabelRuleGroup {
	return []LabelRuleGroup{
		{
			Label: string(types.EvidenceExperimental),
			Patterns: []string{
				"experiment", "randomized", "controlled trial", "ablation",
				"empirical results", "statistically significant", "we measure",
			},
			Weight: 1.0,
		},
		{
			Label: string(types.EvidenceTheoretical),
			Patterns: []string{
				"theorem", "proof", "we prove", "formal analysis", "lemma",
				"complexity bound", "convergence guarantee",
			},
			Weight: 1.0,
		},
		{
			Label: string(types.EvidenceObservational),
			Patterns: []string{
				"observational", "we observe", "longitudinal", "field study",
				"survey respondents", "interview",
			},
			Weight: 1.0,
		},
		{
			Label: string(types.EvidenceAnecdotal),
			Patterns: []string{
				"anecdotal", "in our experience", "informally", "we noticed",
				"preliminary observation",
			},
			Weight: 1.0,
		},
	}
}

// defaultApplicabilityRules returns the applicability rule table in
// declaration order of types.AllApplicabilities.
func defaultApplicabilityRules() []LabelRuleGroup {
	return []LabelRuleGroup{
		{
			Label: string(types.ApplicabilityHigh),
			Patterns: []string{
				"production", "deployed", "industry adoption", "open-source implementation",
				"practical", "real-world", "off-the-shelf",
			},
			Weight: 1.0,
		},
		{
			Label: string(types.ApplicabilityMedium),
			Patterns: []string{
				"prototype", "proof of concept", "can be applied", "potential applications",
				"promising results", "feasible",
			},
			Weight: 1.0,
		},
		{
			Label: string(types.ApplicabilityLow),
			Patterns: []string{
				"future work", "preliminary", "not yet practical", "remains challenging",
				"significant limitations",
			},
			Weight: 1.0,
		},
		{
			Label: string(types.ApplicabilityTheoreticalOnly),
			Patterns: []string{
				"purely theoretical", "theoretical interest", "asymptotic", "idealized setting",
				"in principle",
			},
			Weight: 1.0,
		},
	}
}
