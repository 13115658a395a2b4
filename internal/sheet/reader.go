// Package sheet reads market-study workbooks into a header-normalized raw table.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/UnknownOlympus/plaza/internal/columns"
	"github.com/xuri/excelize/v2"
)

// ErrEmptySheet is returned when the chosen sheet has no header row.
var ErrEmptySheet = errors.New("the study sheet is empty")

// Table is the raw content of a study sheet.
type Table struct {
	Sheet   string     // Name of the sheet that was read.
	Headers []string   // Normalized (trimmed, upper-cased) headers.
	Rows    [][]string // Data rows, each padded to len(Headers).
}

// Column returns the index of a header, or -1.
func (t *Table) Column(header string) int {
	return slices.Index(t.Headers, header)
}

// Read parses an XLSX workbook. It reads the sheet named preferred when present,
// otherwise the first sheet of the workbook. Cell values are read raw, without number formats.
func Read(r io.Reader, preferred string) (*Table, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	name := sheets[0]
	for _, candidate := range sheets {
		if strings.EqualFold(strings.TrimSpace(candidate), preferred) {
			name = candidate
			break
		}
	}

	rows, err := book.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySheet, name)
	}

	headers := make([]string, len(rows[0]))
	for idx, header := range rows[0] {
		headers[idx] = columns.NormalizeHeader(header)
	}

	table := &Table{Sheet: name, Headers: headers}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		padded := make([]string, len(headers))
		copy(padded, row)
		table.Rows = append(table.Rows, padded)
	}

	return table, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
