// Package source reads the tabular input into header-keyed rows and
// assembles per-row metadata from column bindings.
package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one spreadsheet row keyed by header column name.
type Row map[string]string

// Get returns the cell value for the named column ("" when unbound).
func (r Row) Get(column string) string { return r[column] }

// Sheet holds the parsed header and rows of one worksheet.
type Sheet struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the header contains name.
func (s *Sheet) HasColumn(name string) bool {
	for _, col := range s.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Read opens the workbook at path and parses the sheet picked by selector,
// which is either a sheet name or a 0-based index ("0" = first sheet). The
// first row is the header; rows shorter than the header are padded with
// empty cells.
func Read(path, selector string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName, err := resolveSheet(f, selector)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return &Sheet{}, nil
	}

	header := rows[0]
	sheet := &Sheet{Columns: header}
	for _, raw := range rows[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(raw) {
				row[col] = raw[i]
			} else {
				row[col] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func resolveSheet(f *excelize.File, selector string) (string, error) {
	list := f.GetSheetList()
	if idx, err := strconv.Atoi(strings.TrimSpace(selector)); err == nil {
		if idx < 0 || idx >= len(list) {
			return "", fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(list))
		}
		return list[idx], nil
	}
	for _, name := range list {
		if name == selector {
			return name, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found", selector)
}
