// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis drives papers through the classification workflow
// state machine: pending → in_progress → completed, manual_review, or
// failed, with confidence thresholds deciding the terminal state.
// Implements: prd008-analysis (R1-R6);
//
//	docs/ARCHITECTURE § Analysis Workflow.
package analysis

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/paper-analyst/internal/classify"
	"github.com/pdiddy/paper-analyst/pkg/types"
)

// Repository is the persistence contract the workflow consumes (R1.1).
// Lookups for absent IDs return types.ErrPaperNotFound. Update persists
// the classification fields, confidence, and status as one write;
// UpdateStatus with a nil confidence leaves the stored confidence
// untouched.
type Repository interface {
	GetByID(ctx context.Context, id string) (*types.Paper, error)
	Update(ctx context.Context, p *types.Paper) (*types.Paper, error)
	UpdateStatus(ctx context.Context, id string, status types.AnalysisStatus, confidence *float64) (*types.Paper, error)
	ListByStatus(ctx context.Context, status types.AnalysisStatus, limit int) ([]types.Paper, error)
	ListAll(ctx context.Context, limit int) ([]types.Paper, error)
	Statistics(ctx context.Context) (Totals, error)
}

// Totals are store-level counters reported alongside the classification
// statistics (R6.2).
type Totals struct {
	TotalPapers     int `json:"total_papers" yaml:"total_papers"`
	AnalyzedPapers  int `json:"analyzed_papers" yaml:"analyzed_papers"`
	PendingPapers   int `json:"pending_papers" yaml:"pending_papers"`
	ConvertedPapers int `json:"converted_papers" yaml:"converted_papers"`
}

// Outcome bundles the result of one workflow classification call (R3.5).
type Outcome struct {
	PaperID        string                     `json:"paper_id" yaml:"paper_id"`
	Title          string                     `json:"title" yaml:"title"`
	Result         types.ClassificationResult `json:"result" yaml:"result"`
	Status         types.AnalysisStatus       `json:"status" yaml:"status"`
	Paper          *types.Paper               `json:"-" yaml:"-"`
	ShortCircuited bool                       `json:"short_circuited,omitempty" yaml:"short_circuited,omitempty"`
}

// BatchSummary counts the outcome of a batch classification run.
type BatchSummary struct {
	Classified int
	Failed     int
}

// Total returns the number of papers processed.
func (s BatchSummary) Total() int {
	return s.Classified + s.Failed
}

// Workflow orchestrates classification: load paper, apply the guarded
// transitions, invoke the classifier, map confidence to a status, and
// persist. Batch processing is strictly sequential; a per-ID lock keeps
// any single paper from being classified concurrently with itself even
// under concurrent callers (R5.1).
type Workflow struct {
	repo       Repository
	classifier *classify.Classifier
	cfg        types.AnalysisConfig
	w          io.Writer

	mu       sync.Mutex
	inFlight map[string]*paperLock
}

// paperLock is a refcounted per-paper mutex. The refcount lets lock
// release drop the map entry once no caller holds or awaits it, so the
// in-flight table stays bounded by concurrency, not by history.
type paperLock struct {
	mu   sync.Mutex
	refs int
}

// New returns a Workflow over repo. Progress and warning lines go to w.
func New(repo Repository, cfg types.AnalysisConfig, w io.Writer) *Workflow {
	return &Workflow{
		repo:       repo,
		classifier: classify.New(),
		cfg:        cfg.Defaults(),
		w:          w,
		inFlight:   make(map[string]*paperLock),
	}
}

// lock acquires the per-paper mutex and returns its release func.
func (wf *Workflow) lock(id string) func() {
	wf.mu.Lock()
	l, ok := wf.inFlight[id]
	if !ok {
		l = &paperLock{}
		wf.inFlight[id] = l
	}
	l.refs++
	wf.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		wf.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(wf.inFlight, id)
		}
		wf.mu.Unlock()
	}
}

// ClassifyPaper classifies one paper by ID. Papers already completed
// with confidence above the auto-approve threshold short-circuit: their
// stored fields are repackaged without recomputation, keeping the call
// idempotent (R3.2). Otherwise the paper moves to in_progress, is
// classified, and lands in the status its overall confidence maps to.
// Returns types.ErrPaperNotFound (wrapped) for unknown IDs.
func (wf *Workflow) ClassifyPaper(ctx context.Context, id string) (*Outcome, error) {
	unlock := wf.lock(id)
	defer unlock()
	return wf.classifyLocked(ctx, id)
}

func (wf *Workflow) classifyLocked(ctx context.Context, id string) (*Outcome, error) {
	paper, err := wf.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading paper %s: %w", id, err)
	}

	if wf.confidentlyClassified(paper) {
		return shortCircuitOutcome(paper), nil
	}

	if _, err := wf.repo.UpdateStatus(ctx, id, types.StatusInProgress, nil); err != nil {
		return nil, wf.failPaper(ctx, id, fmt.Errorf("marking %s in progress: %w", id, err))
	}

	result := wf.classifier.Classify(paper)
	status := wf.statusFor(result.OverallConfidence)

	confidence := result.OverallConfidence
	paper.PaperType = result.PaperType
	paper.EvidenceStrength = result.EvidenceStrength
	paper.PracticalApplicability = result.PracticalApplicability
	paper.AnalysisConfidence = &confidence
	paper.AnalysisStatus = status

	updated, err := wf.repo.Update(ctx, paper)
	if err != nil {
		return nil, wf.failPaper(ctx, id, fmt.Errorf("persisting classification of %s: %w", id, err))
	}

	return &Outcome{
		PaperID: updated.ID,
		Title:   updated.Title,
		Result:  result,
		Status:  status,
		Paper:   updated,
	}, nil
}

// ClassifyPending fetches pending papers (capped at limit when positive)
// and classifies each sequentially. Individual failures are logged and
// counted, never propagated: one bad paper cannot abort the batch (R4.2).
func (wf *Workflow) ClassifyPending(ctx context.Context, limit int) ([]Outcome, BatchSummary) {
	var summary BatchSummary

	papers, err := wf.repo.ListByStatus(ctx, types.StatusPending, limit)
	if err != nil {
		fmt.Fprintf(wf.w, "warning: listing pending papers: %v\n", err)
		return nil, summary
	}

	var outcomes []Outcome
	for _, p := range papers {
		out, err := wf.ClassifyPaper(ctx, p.ID)
		if err != nil {
			fmt.Fprintf(wf.w, "failed:  %s (%v)\n", p.ID, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(wf.w, "classified: %s → %s (%s, %.2f)\n",
			out.PaperID, out.Status, out.Result.PaperType, out.Result.OverallConfidence)
		outcomes = append(outcomes, *out)
		summary.Classified++
	}

	fmt.Fprintf(wf.w, "\nAnalysis summary: %d classified, %d failed (total: %d)\n",
		summary.Classified, summary.Failed, summary.Total())
	return outcomes, summary
}

// Reclassify re-runs classification for one paper. Without force, a
// completed paper short-circuits regardless of confidence; with force,
// the paper is reset to pending and classified fresh (R3.4).
func (wf *Workflow) Reclassify(ctx context.Context, id string, force bool) (*Outcome, error) {
	paper, err := wf.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading paper %s: %w", id, err)
	}

	if !force && paper.AnalysisStatus == types.StatusCompleted {
		return shortCircuitOutcome(paper), nil
	}

	if _, err := wf.repo.UpdateStatus(ctx, id, types.StatusPending, nil); err != nil {
		return nil, fmt.Errorf("resetting %s to pending: %w", id, err)
	}
	return wf.ClassifyPaper(ctx, id)
}

// Approve accepts a classification awaiting manual review, moving the
// paper to completed. Any other current status is rejected with no state
// change (R3.6).
func (wf *Workflow) Approve(ctx context.Context, id string) (*types.Paper, error) {
	paper, err := wf.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading paper %s: %w", id, err)
	}
	if paper.AnalysisStatus != types.StatusManualReview {
		return nil, fmt.Errorf("paper %s is %s, not awaiting review", id, paper.AnalysisStatus)
	}
	return wf.repo.UpdateStatus(ctx, id, types.StatusCompleted, paper.AnalysisConfidence)
}

// Reject sends a paper back to pending from any status, forcing
// reclassification on the next run (R3.7).
func (wf *Workflow) Reject(ctx context.Context, id string) (*types.Paper, error) {
	paper, err := wf.repo.UpdateStatus(ctx, id, types.StatusPending, nil)
	if err != nil {
		return nil, fmt.Errorf("rejecting classification of %s: %w", id, err)
	}
	return paper, nil
}

// PapersNeedingReview returns all papers currently in manual review.
func (wf *Workflow) PapersNeedingReview(ctx context.Context) ([]types.Paper, error) {
	return wf.repo.ListByStatus(ctx, types.StatusManualReview, 0)
}

// confidentlyClassified reports whether a paper's stored classification
// is good enough to skip recomputation: completed with confidence
// strictly above the auto-approve threshold.
func (wf *Workflow) confidentlyClassified(p *types.Paper) bool {
	return p.AnalysisStatus == types.StatusCompleted &&
		p.AnalysisConfidence != nil &&
		*p.AnalysisConfidence > wf.cfg.AutoApproveThreshold
}

// statusFor maps an overall confidence to a terminal state (R3.3).
func (wf *Workflow) statusFor(confidence float64) types.AnalysisStatus {
	switch {
	case confidence >= wf.cfg.AutoApproveThreshold:
		return types.StatusCompleted
	case confidence >= wf.cfg.ManualReviewThreshold:
		return types.StatusManualReview
	default:
		return types.StatusFailed
	}
}

// failPaper logs the cause and best-effort flips the paper to failed.
// A failure of that secondary write is logged and swallowed; the caller
// sees only the original error (accepted risk, prd008-analysis R4.3).
func (wf *Workflow) failPaper(ctx context.Context, id string, cause error) error {
	fmt.Fprintf(wf.w, "warning: %v\n", cause)
	if _, err := wf.repo.UpdateStatus(ctx, id, types.StatusFailed, nil); err != nil {
		fmt.Fprintf(wf.w, "warning: could not mark %s failed: %v\n", id, err)
	}
	return cause
}

// shortCircuitOutcome repackages a paper's stored classification as an
// Outcome without recomputation. Individual confidences are not stored,
// so each reports the persisted overall confidence.
func shortCircuitOutcome(p *types.Paper) *Outcome {
	var confidence float64
	if p.AnalysisConfidence != nil {
		confidence = *p.AnalysisConfidence
	}
	return &Outcome{
		PaperID: p.ID,
		Title:   p.Title,
		Result: types.ClassificationResult{
			PaperType:              p.PaperType,
			EvidenceStrength:       p.EvidenceStrength,
			PracticalApplicability: p.PracticalApplicability,

			TypeConfidence:          confidence,
			EvidenceConfidence:      confidence,
			ApplicabilityConfidence: confidence,
			OverallConfidence:       confidence,

			HadAbstract: p.Abstract != "",
			Categories:  append([]string(nil), p.Categories...),
		},
		Status:         p.AnalysisStatus,
		Paper:          p,
		ShortCircuited: true,
	}
}
