package persist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/wikiwho/authgraph"
)

func TestOpen_AppliesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	var name string
	row := store.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='words'")
	if err := row.Scan(&name); err != nil {
		t.Fatalf("expected a words table after migration: %v", err)
	}
}

func TestExportPage_WritesRevisionsAndWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	pa, err := authgraph.AnalysePage([]authgraph.Revision{
		{ID: 1, Text: authgraph.TextVariant{Text: "alpha beta"}},
		{ID: 2, Text: authgraph.TextVariant{Text: "alpha beta gamma"}},
	}, authgraph.DefaultConfig())
	if err != nil {
		t.Fatalf("AnalysePage: %v", err)
	}

	if err := store.ExportPage(context.Background(), "Example", pa); err != nil {
		t.Fatalf("ExportPage: %v", err)
	}

	var wordCount int
	row := store.db.QueryRow("SELECT COUNT(*) FROM words")
	if err := row.Scan(&wordCount); err != nil {
		t.Fatalf("counting words: %v", err)
	}
	if wordCount != pa.Store.NumWords() {
		t.Fatalf("expected %d exported words, got %d", pa.Store.NumWords(), wordCount)
	}

	var revisionCount int
	row = store.db.QueryRow("SELECT COUNT(*) FROM revisions")
	if err := row.Scan(&revisionCount); err != nil {
		t.Fatalf("counting revisions: %v", err)
	}
	if revisionCount != len(pa.OrderedRevisions) {
		t.Fatalf("expected %d exported revisions, got %d", len(pa.OrderedRevisions), revisionCount)
	}
}

func TestExportPage_AfterCloseReturnsErrStoreClosed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store.Close()

	pa, err := authgraph.AnalysePage([]authgraph.Revision{
		{ID: 1, Text: authgraph.TextVariant{Text: "a"}},
	}, authgraph.DefaultConfig())
	if err != nil {
		t.Fatalf("AnalysePage: %v", err)
	}

	if err := store.ExportPage(context.Background(), "Example", pa); err != ErrStoreClosed {
		t.Fatalf("expected ErrStoreClosed, got %v", err)
	}
}
