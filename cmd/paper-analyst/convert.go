package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyst/internal/container"
	"github.com/pdiddy/paper-analyst/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdf-paths...]",
	Short: "Convert PDF files to Markdown",
	Long: `Convert transforms raw PDF files into Markdown with YAML frontmatter,
writing results to papers/markdown/. The markitdown backend runs inside
a container (docker or podman, detected automatically). With --batch,
every PDF under papers/raw/ without a Markdown counterpart is converted.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("backend", "markitdown", "conversion backend (markitdown)")
	convertCmd.Flags().String("papers-dir", "papers", "base directory for papers")
	convertCmd.Flags().Bool("batch", false, "process all unconverted papers in papers-dir")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	backend, _ := cmd.Flags().GetString("backend")
	papersDir, _ := cmd.Flags().GetString("papers-dir")
	batch, _ := cmd.Flags().GetBool("batch")

	if backend != "markitdown" {
		return fmt.Errorf("unsupported backend %q: use markitdown", backend)
	}

	paths := args
	if batch {
		var err error
		paths, err = unconvertedPDFs(papersDir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println("No papers to convert.")
			return nil
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("provide PDF paths or use --batch")
	}

	rt, err := container.DetectRuntime()
	if err != nil {
		return fmt.Errorf("detecting container runtime: %w", err)
	}
	conv, err := convert.NewMarkitdownConverter(rt)
	if err != nil {
		return err
	}

	result := convert.ConvertPaths(conv, paths, papersDir, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d paper(s) failed conversion", result.Failed)
	}
	return nil
}

// unconvertedPDFs lists PDFs under papers/raw/ lacking a Markdown counterpart.
func unconvertedPDFs(papersDir string) ([]string, error) {
	rawGlob := filepath.Join(papersDir, "raw", "*.pdf")
	pdfs, err := filepath.Glob(rawGlob)
	if err != nil {
		return nil, fmt.Errorf("listing PDFs: %w", err)
	}

	var pending []string
	for _, p := range pdfs {
		base := strings.TrimSuffix(filepath.Base(p), ".pdf")
		mdPath := filepath.Join(papersDir, "markdown", base+".md")
		if _, err := os.Stat(mdPath); os.IsNotExist(err) {
			pending = append(pending, p)
		}
	}
	return pending, nil
}
