// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyst/internal/analysis"
	"github.com/pdiddy/paper-analyst/internal/paperstore"
	"github.com/pdiddy/paper-analyst/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify papers and manage the review workflow",
	Long: `Analyze runs rule-based classification over synced papers, assigning
each a paper type, evidence strength, and practical applicability with a
confidence score. High-confidence results complete automatically;
mid-confidence results wait for manual review via approve/reject.`,
}

// --- classify subcommand ---

var analyzeClassifyCmd = &cobra.Command{
	Use:   "classify [paper-id]",
	Short: "Classify a single paper by ID",
	Long: `Classify runs the rule-based classifier on one paper and persists the
result. Papers already completed with high confidence are returned as-is
without recomputation.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyzeClassify,
}

func runAnalyzeClassify(cmd *cobra.Command, args []string) error {
	wf, store, err := openWorkflow(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	out, err := wf.ClassifyPaper(context.Background(), args[0])
	if err != nil {
		return err
	}
	return formatOutcome(cmd, out)
}

// --- pending subcommand ---

var analyzePendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Classify all pending papers",
	Long: `Pending classifies every paper awaiting analysis, sequentially.
Individual failures are reported and skipped; the batch always runs to
completion.`,
	RunE: runAnalyzePending,
}

func runAnalyzePending(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	wf, store, err := openWorkflow(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	_, summary := wf.ClassifyPending(context.Background(), limit)
	if summary.Failed > 0 {
		return fmt.Errorf("%d paper(s) failed classification", summary.Failed)
	}
	return nil
}

// --- reclassify subcommand ---

var analyzeReclassifyCmd = &cobra.Command{
	Use:   "reclassify [paper-id]",
	Short: "Re-run classification for a paper",
	Long: `Reclassify re-runs the classifier on one paper. Completed papers are
left untouched unless --force resets them to pending first.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyzeReclassify,
}

func runAnalyzeReclassify(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	wf, store, err := openWorkflow(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	out, err := wf.Reclassify(context.Background(), args[0], force)
	if err != nil {
		return err
	}
	return formatOutcome(cmd, out)
}

// --- approve / reject subcommands ---

var analyzeApproveCmd = &cobra.Command{
	Use:   "approve [paper-id]",
	Short: "Accept a classification awaiting manual review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wf, store, err := openWorkflow(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		paper, err := wf.Approve(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("approved: %s → %s\n", paper.ID, paper.AnalysisStatus)
		return nil
	},
}

var analyzeRejectCmd = &cobra.Command{
	Use:   "reject [paper-id]",
	Short: "Reject a classification, returning the paper to pending",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wf, store, err := openWorkflow(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		paper, err := wf.Reject(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("rejected: %s → %s\n", paper.ID, paper.AnalysisStatus)
		return nil
	},
}

// --- review subcommand ---

var analyzeReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List papers awaiting manual review",
	RunE:  runAnalyzeReview,
}

func runAnalyzeReview(cmd *cobra.Command, args []string) error {
	wf, store, err := openWorkflow(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	papers, err := wf.PapersNeedingReview(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	if len(papers) == 0 {
		fmt.Println("No papers awaiting review.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-28s  %-44s  %-22s  %s\n",
		"Paper", "Title", "Type", "Confidence")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 108))

	for _, p := range papers {
		title := p.Title
		if len(title) > 44 {
			title = title[:41] + "..."
		}
		confidence := "-"
		if p.AnalysisConfidence != nil {
			confidence = fmt.Sprintf("%.2f", *p.AnalysisConfidence)
		}
		fmt.Fprintf(os.Stdout, "%-28s  %-44s  %-22s  %s\n",
			p.ID, title, p.PaperType, confidence)
	}

	fmt.Fprintf(os.Stdout, "\n%d paper(s) awaiting review\n", len(papers))
	return nil
}

// --- stats subcommand ---

var analyzeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show classification statistics for the whole store",
	RunE:  runAnalyzeStats,
}

func runAnalyzeStats(cmd *cobra.Command, args []string) error {
	wf, store, err := openWorkflow(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := wf.Stats(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("Papers: %d total, %d analyzed, %d pending, %d converted\n\n",
		stats.Totals.TotalPapers, stats.Totals.AnalyzedPapers,
		stats.Totals.PendingPapers, stats.Totals.ConvertedPapers)

	fmt.Println("By status:")
	for _, s := range []types.AnalysisStatus{
		types.StatusPending, types.StatusInProgress, types.StatusCompleted,
		types.StatusManualReview, types.StatusFailed,
	} {
		if n := stats.ByStatus[s]; n > 0 {
			fmt.Printf("  %-16s %d\n", s, n)
		}
	}

	fmt.Println("\nBy type:")
	for _, t := range types.AllPaperTypes() {
		if n := stats.ByType[t]; n > 0 {
			fmt.Printf("  %-24s %d\n", t, n)
		}
	}

	fmt.Println("\nBy evidence strength:")
	for _, e := range types.AllEvidenceStrengths() {
		if n := stats.ByEvidence[e]; n > 0 {
			fmt.Printf("  %-16s %d\n", e, n)
		}
	}

	fmt.Println("\nBy applicability:")
	for _, a := range types.AllApplicabilities() {
		if n := stats.ByApplicability[a]; n > 0 {
			fmt.Printf("  %-16s %d\n", a, n)
		}
	}

	fmt.Printf("\nConfidence: %d high, %d medium, %d low, %d unclassified\n",
		stats.Confidence.High, stats.Confidence.Medium,
		stats.Confidence.Low, stats.Confidence.None)
	return nil
}

// --- shared helpers ---

func openWorkflow(cmd *cobra.Command) (*analysis.Workflow, *paperstore.Store, error) {
	papersDir, _ := cmd.Flags().GetString("papers-dir")
	if papersDir == "" {
		papersDir = "papers"
	}
	autoApprove, _ := cmd.Flags().GetFloat64("auto-approve")
	manualReview, _ := cmd.Flags().GetFloat64("manual-review")

	store, err := paperstore.NewStore(types.StoreConfig{PapersDir: papersDir})
	if err != nil {
		return nil, nil, err
	}

	cfg := types.AnalysisConfig{
		AutoApproveThreshold:  autoApprove,
		ManualReviewThreshold: manualReview,
	}
	return analysis.New(store, cfg, os.Stdout), store, nil
}

func formatOutcome(cmd *cobra.Command, out *analysis.Outcome) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("paper:         %s\n", out.PaperID)
	if out.Title != "" {
		fmt.Printf("title:         %s\n", out.Title)
	}
	fmt.Printf("type:          %s (%.2f)\n", out.Result.PaperType, out.Result.TypeConfidence)
	fmt.Printf("evidence:      %s (%.2f)\n", out.Result.EvidenceStrength, out.Result.EvidenceConfidence)
	fmt.Printf("applicability: %s (%.2f)\n", out.Result.PracticalApplicability, out.Result.ApplicabilityConfidence)
	fmt.Printf("status:        %s\n", out.Status)
	if out.ShortCircuited {
		fmt.Println("(already classified; stored result returned)")
	}
	fmt.Println()
	fmt.Println(analysis.Explanation(out.Result))
	return nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	analyzeCmd.PersistentFlags().String("papers-dir", "papers", "base directory for papers (contains metadata/, markdown/, index/)")
	analyzeCmd.PersistentFlags().Float64("auto-approve", 0, "confidence threshold for automatic completion (default 0.8)")
	analyzeCmd.PersistentFlags().Float64("manual-review", 0, "confidence threshold for manual review (default 0.5)")
	analyzeCmd.PersistentFlags().Bool("json", false, "output results as JSON")

	// Pending flags.
	analyzePendingCmd.Flags().Int("limit", 0, "maximum papers to classify (0 = all)")

	// Reclassify flags.
	analyzeReclassifyCmd.Flags().Bool("force", false, "reset a completed paper and classify fresh")

	// Wire subcommands.
	analyzeCmd.AddCommand(analyzeClassifyCmd)
	analyzeCmd.AddCommand(analyzePendingCmd)
	analyzeCmd.AddCommand(analyzeReclassifyCmd)
	analyzeCmd.AddCommand(analyzeApproveCmd)
	analyzeCmd.AddCommand(analyzeRejectCmd)
	analyzeCmd.AddCommand(analyzeReviewCmd)
	analyzeCmd.AddCommand(analyzeStatsCmd)

	rootCmd.AddCommand(analyzeCmd)
}
