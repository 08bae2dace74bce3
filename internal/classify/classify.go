// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "github.com/pdiddy/paper-analyst/pkg/types"

// Classifier scores papers against the rule table. The table is loaded
// once at construction and never mutated, so one Classifier is safe for
// concurrent use and classification is a pure function of its input.
type Classifier struct {
	typeRules          []TypeRuleGroup
	evidenceRules      []LabelRuleGroup
	applicabilityRules []LabelRuleGroup
}

// New returns a Classifier backed by the default rule table.
func New() *Classifier {
	return &Classifier{
		typeRules:          defaultTypeRules(),
		evidenceRules:      defaultEvidenceRules(),
		applicabilityRules: defaultApplicabilityRules(),
	}
}

// Classify aggregates the paper's text once and runs the three scorers
// independently over it. The overall confidence is the unweighted mean
// of the three. Classify never fails: any internal panic (e.g. a
// malformed paper) degrades to the default result at floor confidence
// (R5.2), so a single bad paper cannot abort a batch.
func (c *Classifier) Classify(p *types.Paper) (result types.ClassificationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = defaultResult()
		}
	}()

	text := Aggregate(p)

	paperType, typeConf := c.scoreType(text)
	evidence, evidenceConf := c.scoreEvidence(text)
	applicability, applicabilityConf := c.scoreApplicability(text)

	// The mean of three equal confidences is that value exactly; float
	// summation would drift a zero-signal paper off the 0.1 floor.
	overall := (typeConf + evidenceConf + applicabilityConf) / 3.0
	if typeConf == evidenceConf && evidenceConf == applicabilityConf {
		overall = typeConf
	}

	result = types.ClassificationResult{
		PaperType:              paperType,
		EvidenceStrength:       evidence,
		PracticalApplicability: applicability,

		TypeConfidence:          typeConf,
		EvidenceConfidence:      evidenceConf,
		ApplicabilityConfidence: applicabilityConf,
		OverallConfidence:       overall,

		AnalyzedChars: len(text),
		HadAbstract:   p.Abstract != "",
		Categories:    append([]string(nil), p.Categories...),
	}
	return result
}

// defaultResult is the fixed degraded outcome: the zero-signal defaults
// of each taxonomy at floor confidence.
func defaultResult() types.ClassificationResult {
	return types.ClassificationResult{
		PaperType:              types.TypeEmpiricalStudy,
		EvidenceStrength:       types.EvidenceTheoretical,
		PracticalApplicability: types.ApplicabilityMedium,

		TypeConfidence:          minConfidence,
		EvidenceConfidence:      minConfidence,
		ApplicabilityConfidence: minConfidence,
		OverallConfidence:       minConfidence,
	}
}
