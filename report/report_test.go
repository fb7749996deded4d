package report

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/wikiwho/authgraph"
)

func TestWriteFile_OneRowPerWord(t *testing.T) {
	pa, err := authgraph.AnalysePage([]authgraph.Revision{
		{ID: 1, Contributor: authgraph.Contributor{Name: "alice"}, Text: authgraph.TextVariant{Text: "alpha beta"}},
		{ID: 2, Contributor: authgraph.Contributor{Name: "bob"}, Text: authgraph.TextVariant{Text: "alpha beta gamma"}},
	}, authgraph.DefaultConfig())
	if err != nil {
		t.Fatalf("AnalysePage: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteFile(pa, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}

	wantRows := pa.Store.NumWords() + 1 // header + one row per word
	if len(rows) != wantRows {
		t.Fatalf("expected %d rows, got %d", wantRows, len(rows))
	}
	if len(rows) == 0 || len(rows[0]) != len(header) {
		t.Fatalf("expected header row with %d columns, got %v", len(header), rows[0])
	}
}
