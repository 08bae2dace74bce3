// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyst/internal/paperstore"
	"github.com/pdiddy/paper-analyst/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the paper index (sync, export)",
	Long: `Store manages the SQLite paper index built from metadata records.
Use subcommands to sync metadata files into the index or export it.`,
}

// --- sync subcommand ---

var storeSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync metadata YAML files into the paper index",
	Long: `Sync reads metadata YAML files from papers/metadata/ and upserts them
into the SQLite index. File mod times detect changes, so unchanged papers
are skipped on subsequent runs. New papers enter the analysis workflow as
pending; syncing never touches existing classification fields.`,
	RunE: runStoreSync,
}

func runStoreSync(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Sync(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d paper(s) failed to sync", summary.Failed)
	}
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the paper index to YAML or JSON",
	Long: `Export writes every paper record, classification fields included, to
papers/index/export.yaml or export.json.`,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background()); err != nil {
			return err
		}
		fmt.Println("Exported to papers/index/export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background()); err != nil {
			return err
		}
		fmt.Println("Exported to papers/index/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*paperstore.Store, error) {
	papersDir, _ := cmd.Flags().GetString("papers-dir")
	if papersDir == "" {
		papersDir = "papers"
	}
	return paperstore.NewStore(types.StoreConfig{PapersDir: papersDir})
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("papers-dir", "papers", "base directory for papers (contains metadata/, markdown/, index/)")

	// Export flags.
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	// Wire subcommands.
	storeCmd.AddCommand(storeSyncCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
