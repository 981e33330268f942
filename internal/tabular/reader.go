// Package tabular reads header-mapped rows from CSV and Excel files.
//
// Election inputs arrive in both shapes: the Secretary of State publishes
// precinct-level results as XLSX workbooks, while county exports and QGIS
// attribute tables are plain CSV. Both are exposed to callers as
// map[header]value rows so the aggregation code does not care which format
// a file came in.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is a single data row keyed by column header.
type Row map[string]string

// RowFunc is invoked for every data row. Returning an error stops the read.
type RowFunc func(row Row) error

// ReadRows streams the rows of a tabular file, dispatching on extension.
// The first row is treated as the header.
func ReadRows(path string, fn RowFunc) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return readExcelRows(path, fn)
	default:
		return readCSVRows(path, fn)
	}
}

// ReadHeader returns only the header row of a tabular file.
func ReadHeader(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		rows, err := sheetRows(f)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("file %s is empty", path)
		}
		return cleanHeader(rows[0]), nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		header, err := csv.NewReader(f).Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
		}
		return cleanHeader(header), nil
	}
}

func readCSVRows(path string, fn RowFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return fmt.Errorf("file %s is empty", path)
	}
	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	header = cleanHeader(header)

	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read row %d of %s: %w", line+1, path, err)
		}
		line++
		if err := fn(zipRow(header, record)); err != nil {
			return err
		}
	}
}

func readExcelRows(path string, fn RowFunc) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	rows, err := sheetRows(f)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("file %s is empty", path)
	}

	header := cleanHeader(rows[0])
	for i := 1; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		if err := fn(zipRow(header, rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// sheetRows returns the rows of the first sheet in the workbook.
func sheetRows(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// zipRow pairs header names with record values. Short records leave the
// trailing columns empty, mirroring how Excel omits trailing blank cells.
func zipRow(header, record []string) Row {
	row := make(Row, len(header))
	for i, name := range header {
		if i < len(record) {
			row[name] = record[i]
		} else {
			row[name] = ""
		}
	}
	return row
}

// cleanHeader trims whitespace and strips a UTF-8 BOM from the first cell.
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\uFEFF")
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func isEmptyRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseCount parses an integer vote or area count that may carry comma
// thousands separators, as SOS exports format them.
func ParseCount(s string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty count")
	}
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", s, err)
	}
	return v, nil
}

// ParseArea parses a floating point area value such as a QGIS $area field.
func ParseArea(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty area")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid area %q: %w", s, err)
	}
	return v, nil
}
