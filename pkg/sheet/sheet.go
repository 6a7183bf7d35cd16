package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"ecodev/pkg/importer"
)

// Decode reads the first sheet of an xlsx workbook into header-keyed rows.
// The first row is the header. Blank cells are dropped from the row map so
// that presence checks downstream see exactly the cells the file filled in.
// A decode error here is the batch-fatal path; no rows are processed.
func Decode(r io.Reader) ([]importer.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	header := raw[0]
	rows := make([]importer.Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := importer.Row{}
		for i, cell := range cells {
			if i >= len(header) {
				break
			}
			key := strings.TrimSpace(header[i])
			val := strings.TrimSpace(cell)
			if key == "" || val == "" {
				continue
			}
			row[key] = val
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Template builds the downloadable example workbook: the import header, one
// sample program row, a separator row, and one sample project row referencing
// program id 1.
func Template() (*excelize.File, error) {
	f := excelize.NewFile()
	sh := f.GetSheetName(0)
	rows := [][]interface{}{
		{"name", "description", "category", "status", "budget", "startDate", "endDate", "programId", "priority", "progress", "deadline"},
		{"Digital Transition 2024", "Regional digitalisation push", "digital", "active", 150000, "2024-01-01", "2024-12-31"},
		{},
		{"SME onboarding portal", "First wave of the transition", nil, "in-progress", 40000, "2024-02-01", nil, 1, "high", 25, "2024-06-30"},
	}
	for i, cells := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sh, cell, &cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}
