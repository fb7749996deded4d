// Package report renders a completed authgraph.PageAnalysis as a
// human-readable authorship spreadsheet, adapted from the teacher's
// parser/xlsx.go cell-writing conventions (one row per word instead of
// one row per parsed table).
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/wikiwho/authgraph"
)

const sheetName = "Authorship"

var header = []string{
	"Word", "Origin Revision", "Origin Contributor", "Latest Revision", "Inbound Count", "Outbound Count",
}

// WriteFile renders pa's word-level authorship graph to an xlsx workbook
// at path, one row per word ordered by allocation (word pointer) order.
func WriteFile(pa *authgraph.PageAnalysis, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("report: renaming sheet: %w", err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("report: computing header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return fmt.Errorf("report: writing header: %w", err)
		}
	}

	originContributor := contributorIndex(pa)

	row := 2
	for i := 0; i < pa.Store.NumWords(); i++ {
		wp := authgraph.WordPtr(i)
		rec := pa.Store.Word(wp)
		wa := pa.Store.WordAnalysis(wp)

		values := []interface{}{
			rec.Text,
			wa.OriginRevisionID,
			originContributor[wa.OriginRevisionID],
			wa.LatestRevisionID,
			len(wa.Inbound),
			len(wa.Outbound),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("report: computing cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("report: writing row %d: %w", row, err)
			}
		}
		row++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: saving %s: %w", path, err)
	}
	return nil
}

// contributorIndex maps each committed revision ID to its contributor's
// display name, used to annotate each word's origin.
func contributorIndex(pa *authgraph.PageAnalysis) map[authgraph.RevisionID]string {
	idx := make(map[authgraph.RevisionID]string, len(pa.OrderedRevisions))
	for _, id := range pa.OrderedRevisions {
		ptr := pa.RevisionsByID[id]
		rec := pa.Store.Revision(ptr)
		idx[id] = rec.Contributor.Name
	}
	return idx
}
