// Package reader loads tabular insurance data from CSV and Excel files
// into columns and computes per-column summaries for analysis reports.
package reader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Column is one named column with its raw cell values, header excluded.
// Values are untouched strings; missing-value interpretation happens
// downstream.
type Column struct {
	Name   string
	Values []string
}

// Table is the parsed content of one sheet or CSV file.
type Table struct {
	File    string
	Sheet   string
	Columns []Column
}

// Headers returns the column names in file order.
func (t *Table) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// ReadFile dispatches on the file extension. sheet selects an Excel sheet
// and is ignored for CSV; empty means the first sheet.
func ReadFile(path, sheet string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx", ".xlsm":
		return readExcel(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .csv, .xlsx or .xlsm)", filepath.Ext(path))
	}
}

// columnsFromRows turns row-major cell data into columns. The first row is
// the header; short rows are padded with empty cells. Columns with an
// empty header are dropped.
func columnsFromRows(rows [][]string) []Column {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]
	cols := make([]Column, 0, len(header))
	keep := make([]int, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cols = append(cols, Column{Name: name, Values: make([]string, 0, len(rows)-1)})
		keep = append(keep, i)
	}

	for _, row := range rows[1:] {
		for ci, src := range keep {
			v := ""
			if src < len(row) {
				v = row[src]
			}
			cols[ci].Values = append(cols[ci].Values, v)
		}
	}
	return cols
}
