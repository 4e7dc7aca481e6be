// Package migration imports commercial opportunities from the legacy
// spreadsheet into the opportunities tables.
package migration

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptySheet is returned when the workbook has no header row.
var ErrEmptySheet = errors.New("spreadsheet has no header row")

// Row is one data row keyed by lower-cased header name. Cells are raw values,
// so dates arrive as Excel serial numbers.
type Row struct {
	Index  int
	values map[string]string
}

// NewRow builds a row from header/value pairs. Keys are normalised the same
// way sheet headers are.
func NewRow(index int, values map[string]string) Row {
	r := Row{Index: index, values: make(map[string]string, len(values))}
	for k, v := range values {
		r.values[headerKey(k)] = v
	}
	return r
}

// Get returns the trimmed cell under column, or "" when absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.values[headerKey(column)])
}

func headerKey(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

// ReadSheet reads the first worksheet of an XLSX workbook. The first row is
// the header; fully blank rows are skipped.
func ReadSheet(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("migration.ReadSheet open: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	grid, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("migration.ReadSheet rows: %w", err)
	}
	if len(grid) == 0 {
		return nil, ErrEmptySheet
	}

	header := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		header[i] = headerKey(h)
	}

	rows := make([]Row, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		values := make(map[string]string, len(header))
		blank := true
		for i, cell := range cells {
			if i >= len(header) || header[i] == "" {
				continue
			}
			values[header[i]] = cell
			if strings.TrimSpace(cell) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, Row{Index: len(rows), values: values})
	}
	return rows, nil
}
