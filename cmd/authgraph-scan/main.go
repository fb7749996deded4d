// Command authgraph-scan runs the authorship engine over a single
// MediaWiki XML dump file from the command line, without standing up
// the daemon. It is adapted from the teacher's cmd/eval command: a
// flag-driven entrypoint that loads one input, drives the core library
// directly, and writes a report, rather than serving HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/wikiwho/authgraph"
	"github.com/wikiwho/authgraph/dump"
	"github.com/wikiwho/authgraph/persist"
	"github.com/wikiwho/authgraph/report"
	"github.com/wikiwho/authgraph/validate"
)

func main() {
	dumpPath := flag.String("dump", "", "Path to a MediaWiki XML dump containing a single page")
	xlsxPath := flag.String("xlsx", "", "Write an authorship spreadsheet to this path")
	dbPath := flag.String("db", "", "Export the analysis into this sqlite3 database")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *dumpPath == "" {
		fmt.Fprintln(os.Stderr, "authgraph-scan: -dump is required")
		os.Exit(2)
	}

	if err := run(*dumpPath, *xlsxPath, *dbPath, logger); err != nil {
		slog.Error("scan failed", "error", err)
		os.Exit(1)
	}
}

func run(dumpPath, xlsxPath, dbPath string, logger *slog.Logger) error {
	f, err := os.Open(dumpPath)
	if err != nil {
		return fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	title, revisions, err := dump.ReadPage(f, logger)
	if err != nil {
		return fmt.Errorf("reading dump: %w", err)
	}
	slog.Info("loaded page", "title", title, "revisions", len(revisions))

	pa, err := authgraph.AnalysePage(revisions, authgraph.DefaultConfig())
	if err != nil {
		return fmt.Errorf("analysing page: %w", err)
	}
	slog.Info("analysis complete",
		"committed", len(pa.OrderedRevisions),
		"spam", len(pa.SpamIDs),
		"words", pa.Store.NumWords(),
	)

	for _, issue := range validate.Check(pa) {
		slog.Warn("invariant violation", "property", issue.Property, "message", issue.Message)
	}

	if xlsxPath != "" {
		if err := report.WriteFile(pa, xlsxPath); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		slog.Info("wrote report", "path", xlsxPath)
	}

	if dbPath != "" {
		store, err := persist.Open(context.Background(), dbPath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		if err := store.ExportPage(context.Background(), title, pa); err != nil {
			return fmt.Errorf("exporting page: %w", err)
		}
		slog.Info("exported to database", "path", dbPath)
	}

	return nil
}
