package sheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ecodev/pkg/importer"
)

func workbookBytes(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sh := f.GetSheetName(0)
	for i, cells := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sh, cell, &cells))
	}
	buf := &bytes.Buffer{}
	require.NoError(t, f.Write(buf))
	return buf
}

func TestDecodeHeaderKeyedRows(t *testing.T) {
	buf := workbookBytes(t, [][]interface{}{
		{"name", "category", "budget", "startDate"},
		{"P1", "innovation", 1000, "2024-01-01"},
	})
	rows, err := Decode(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "P1", rows[0].Get("name"))
	require.Equal(t, "innovation", rows[0].Get("category"))
	require.Equal(t, "1000", rows[0].Get("budget"))
}

func TestDecodeOmitsBlankCells(t *testing.T) {
	// the blank separator row sits between data rows; trailing blank rows
	// are trimmed by the reader and never reach the importer
	buf := workbookBytes(t, [][]interface{}{
		{"name", "category", "budget"},
		{"P1", "", 10},
		{},
		{"P2", "digital", 20},
	})
	rows, err := Decode(buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.False(t, rows[0].Has("category"))
	require.True(t, rows[0].Has("budget"))
	require.Empty(t, rows[1])
	require.Equal(t, "P2", rows[2].Get("name"))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("this is not a workbook"))
	require.Error(t, err)
}

func TestTemplateRoundTrip(t *testing.T) {
	f, err := Template()
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	require.NoError(t, f.Write(buf))

	rows, err := Decode(buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, importer.KindProgram, importer.Classify(rows[0]))
	require.Equal(t, importer.KindBlank, importer.Classify(rows[1]))
	require.Equal(t, importer.KindProject, importer.Classify(rows[2]))

	_, err = importer.CoerceProgram(rows[0])
	require.NoError(t, err)
	_, err = importer.CoerceProject(rows[2])
	require.NoError(t, err)
}
