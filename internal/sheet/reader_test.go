package sheet_test

import (
	"bytes"
	"testing"

	"github.com/UnknownOlympus/plaza/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook builds an in-memory XLSX with the given sheets; the first row of each is the header.
func workbook(t *testing.T, sheets map[string][][]any, order ...string) *bytes.Buffer {
	t.Helper()
	book := excelize.NewFile()
	defer book.Close()

	for idx, name := range order {
		if idx == 0 {
			require.NoError(t, book.SetSheetName("Sheet1", name))
		} else {
			_, err := book.NewSheet(name)
			require.NoError(t, err)
		}
		for rowIdx, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			require.NoError(t, err)
			require.NoError(t, book.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := book.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRead(t *testing.T) {
	t.Run("prefers the named sheet", func(t *testing.T) {
		buf := workbook(t, map[string][][]any{
			"Resumen": {{"X"}, {"1"}},
			"EEMM": {
				{" ref ", "Coord", "pvp"},
				{"A1", "41.5, 2.1", 250000},
				{"A2", "41.6, 2.2", 310000.5},
			},
		}, "Resumen", "EEMM")

		table, err := sheet.Read(buf, "EEMM")

		require.NoError(t, err)
		assert.Equal(t, "EEMM", table.Sheet)
		assert.Equal(t, []string{"REF", "COORD", "PVP"}, table.Headers)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, []string{"A1", "41.5, 2.1", "250000"}, table.Rows[0])
		assert.Equal(t, "310000.5", table.Rows[1][2])
		assert.Equal(t, 1, table.Column("COORD"))
		assert.Equal(t, -1, table.Column("ZONA"))
	})

	t.Run("falls back to the first sheet", func(t *testing.T) {
		buf := workbook(t, map[string][][]any{
			"Datos": {{"REF", "COORD"}, {"B1", "40.4, -3.7"}},
		}, "Datos")

		table, err := sheet.Read(buf, "EEMM")

		require.NoError(t, err)
		assert.Equal(t, "Datos", table.Sheet)
		assert.Len(t, table.Rows, 1)
	})

	t.Run("pads short rows and skips blank ones", func(t *testing.T) {
		buf := workbook(t, map[string][][]any{
			"EEMM": {{"REF", "COORD", "ZONA"}, {"A1"}, {"", "", ""}, {"A2", "1,2", "Centro"}},
		}, "EEMM")

		table, err := sheet.Read(buf, "EEMM")

		require.NoError(t, err)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, []string{"A1", "", ""}, table.Rows[0])
		assert.Equal(t, "Centro", table.Rows[1][2])
	})

	t.Run("empty sheet", func(t *testing.T) {
		buf := workbook(t, map[string][][]any{"EEMM": {}}, "EEMM")

		table, err := sheet.Read(buf, "EEMM")

		require.Nil(t, table)
		require.ErrorIs(t, err, sheet.ErrEmptySheet)
	})

	t.Run("not a workbook", func(t *testing.T) {
		table, err := sheet.Read(bytes.NewBufferString("REF;COORD\n"), "EEMM")

		require.Nil(t, table)
		require.ErrorContains(t, err, "failed to open workbook")
	})
}
