package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/audit"
	"github.com/ziadkadry99/caravansite/internal/auth"
	"github.com/ziadkadry99/caravansite/internal/importers"
	"github.com/ziadkadry99/caravansite/internal/progress"
)

var importCmd = &cobra.Command{
	Use:   "import <file-or-dir>",
	Short: "Import documents exported from the hosted store",
	Long: `Reads JSON or YAML exports and writes them into the database.

A directory is searched with --pattern (default: every .json, .yml and
.yaml file). Each file feeds the collection named by its base name, for
example quoteRequests.json or blogs.yaml. Documents whose id already
exists are skipped, so an import can be re-run safely.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringSlice("pattern", nil, "glob patterns used when importing a directory")
	importCmd.Flags().String("collection", "", "collection for a single file whose name does not say")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	patterns, _ := cmd.Flags().GetStringSlice("pattern")
	if len(patterns) == 0 {
		patterns = importers.DefaultPatterns
	}
	collection, _ := cmd.Flags().GetString("collection")

	sources, unknown, err := importers.Resolve(args[0], patterns)
	if err != nil {
		return fmt.Errorf("finding exports: %w", err)
	}
	if collection != "" && len(unknown) == 1 && len(sources) == 0 {
		sources = []importers.Source{{Path: unknown[0], Collection: collection}}
		unknown = nil
	}
	for _, p := range unknown {
		fmt.Fprintf(os.Stderr, "Skipping %s: no collection named %q\n", p, filepath.Base(p))
	}
	if len(sources) == 0 {
		return fmt.Errorf("no exports found in %s", args[0])
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	rec := admin.NewRecorder(audit.NewStore(database), log)
	im := importers.New(database, rec, progress.NewReporter("Importing"), log)

	results, err := im.ImportSources(auth.WithActor(ctx, "cli"), sources)
	if err != nil {
		return err
	}

	var imported, skipped int
	for _, res := range results {
		imported += res.Imported
		skipped += res.Skipped
		fmt.Printf("%-20s %-40s %d imported, %d skipped\n", res.Source.Collection, res.Source.Path, res.Imported, res.Skipped)
		if verbose {
			for _, e := range res.Errors {
				fmt.Printf("    %s\n", e)
			}
		} else if len(res.Errors) > 0 {
			fmt.Printf("    %d errors (use -v to list)\n", len(res.Errors))
		}
	}
	fmt.Printf("\nDone: %d imported, %d skipped across %d files\n", imported, skipped, len(results))
	return nil
}
