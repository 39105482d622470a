package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/numbook/internal/book"
	"github.com/dgallion1/numbook/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "numbook",
		Short:         "Number theorem-style environments across a markdown book",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRenderCmd() *cobra.Command {
	var (
		outDir string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "render <dir>",
		Short: "Render a book directory: number environments and resolve references",
		Long: `Render loads SUMMARY.md and the chapters it lists from <dir>, numbers
all {{thm}}/{{lem}}/... environment declarations, resolves {{ref:}} and
{{tref:}} references, and writes the rewritten chapters back.

Rendering configuration is read from numbook.yaml in the book directory;
a missing file means the built-in environments and no section prefix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0], outDir, dryRun)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "write rewritten chapters to this directory instead of in place")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "render without writing anything")
	return cmd
}

func runRender(dir, outDir string, dryRun bool) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fsys := os.DirFS(dir)
	cfg, err := config.LoadBookConfig(fsys)
	if err != nil {
		return err
	}

	b, err := book.LoadDir(fsys)
	if err != nil {
		return err
	}

	warnings := book.Render(b, book.Options{
		Envs:   cfg.Registry(),
		Prefix: cfg.Prefix,
	}, log)

	if dryRun {
		log.Info("dry run, nothing written", "chapters", len(b.Chapters), "warnings", len(warnings))
		return nil
	}

	if outDir == "" {
		outDir = dir
	}
	written := 0
	for _, ch := range b.Chapters {
		if ch.Draft {
			continue
		}
		dest := filepath.Join(outDir, filepath.FromSlash(ch.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(dest), err)
		}
		if err := os.WriteFile(dest, []byte(ch.Body), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
		written++
	}
	log.Info("rendered book", "chapters", written, "warnings", len(warnings))
	return nil
}
