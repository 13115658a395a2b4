// Package export writes the visible developments of a view as downloadable files.
package export

import (
	"fmt"
	"io"

	"github.com/UnknownOlympus/plaza/internal/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet the development summary is written to.
const SheetName = "PROMOCIONES"

var header = []any{"REF", "PROMOCION", "LAT", "LON", "UDS", "PVP MEDIO", "VRM", "DORM"}

// WriteXLSX writes one row per development to w.
func WriteXLSX(w io.Writer, devs []models.Development) error {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err = book.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err = book.SetCellStyle(SheetName, "A1", "H1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for idx, dev := range devs {
		row := []any{
			dev.Reference,
			dev.DisplayName(),
			dev.Coordinates.Latitude,
			dev.Coordinates.Longitude,
			dev.Units,
			optional(dev.MeanPrice),
			optional(dev.UnitPrice),
			dev.Bedrooms,
		}
		cell, cellErr := excelize.CoordinatesToCellName(1, idx+2)
		if cellErr != nil {
			return fmt.Errorf("failed to address row %d: %w", idx+2, cellErr)
		}
		if err = book.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write development %s: %w", dev.Reference, err)
		}
	}

	const nameWidth = 32
	if err = book.SetColWidth(SheetName, "B", "B", nameWidth); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err = book.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func optional(value *float64) any {
	if value == nil {
		return ""
	}
	return *value
}
