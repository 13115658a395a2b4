// Package fixtures builds in-memory market-study workbooks for tests.
package fixtures

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// StudyHeaders is the header row of the sample study.
var StudyHeaders = []any{"REF", "PROMOCIÓN", "COORDENADAS", "PVP", "VRM SCIC", "TIPOLOGÍA", "DORMITORIOS", "CIUDAD"}

// StudyRows returns the data rows of the sample study: three developments, one row with a broken coordinate.
func StudyRows() [][]any {
	return [][]any{
		{"P-001", "Residencial Mar", "41.3851, 2.1734", 300000, 3000, "Piso", 2, "Barcelona"},
		{"P-001", "Residencial Mar", "41.3852, 2.1735", 400000, 3500, "Ático", "3.0", "Barcelona"},
		{"P-002", "Torre Sol", "40.4168, -3.7038", 250000, 2800, "Piso", 1, "Madrid"},
		{"P-003", "Jardines", "not a coordinate", 180000, 2000, "Piso", 2, "Valencia"},
		{"P-004", "Las Dunas", "39.4699,-0.3763", 210000, 2400, "Dúplex", 3, "Valencia"},
	}
}

// Workbook writes a single-sheet workbook with the given header and rows and returns its bytes.
func Workbook(t *testing.T, sheet string, header []any, rows [][]any) []byte {
	t.Helper()
	book := excelize.NewFile()
	defer book.Close()

	require.NoError(t, book.SetSheetName("Sheet1", sheet))
	require.NoError(t, book.SetSheetRow(sheet, "A1", &header))
	for idx, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, idx+2)
		require.NoError(t, err)
		require.NoError(t, book.SetSheetRow(sheet, cell, &row))
	}

	buf, err := book.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// Study returns the sample study workbook on the EEMM sheet.
func Study(t *testing.T) []byte {
	t.Helper()
	return Workbook(t, "EEMM", StudyHeaders, StudyRows())
}
