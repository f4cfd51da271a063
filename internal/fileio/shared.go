package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadAnyMaps picks a parser by file extension and returns the rows as
// string-keyed maps plus the header names in original column order.
// headerRow is 1-based; it exists because real planning sheets often carry
// title rows above the actual header.
func ReadAnyMaps(r io.Reader, filename string, headerRow int) ([]map[string]string, []string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv":
		return readCSV(r, headerRow)
	default:
		return nil, nil, fmt.Errorf("unsupported file: %s", filename)
	}
}

// GridToMaps converts a raw 2-D cell array (the second provider shape: rows
// straight from a sheets API) into string-keyed maps plus ordered headers.
func GridToMaps(rows [][]string, headerRow int) ([]map[string]string, []string) {
	if len(rows) == 0 {
		return nil, nil
	}
	h := pickHeader(rows, headerRow)
	return rowsToMaps(rows, h, headerRow), h
}

// pickHeader takes the header row, trimming cells and substituting
// "Column N" for blanks so every column stays addressable.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToMaps converts the array-of-arrays into maps keyed by header,
// dropping rows that are blank in every cell.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]string {
	start := headerRow // first row after the header
	if start < 1 {
		start = 1
	}
	var out []map[string]string
	for r := start; r < len(rows); r++ {
		rec := rows[r]
		m := map[string]string{}
		empty := true
		for c := 0; c < len(headers); c++ {
			var v string
			if c < len(rec) {
				v = rec[c]
			}
			m[headers[c]] = v
			if strings.TrimSpace(v) != "" {
				empty = false
			}
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}

func normalizeCell(s string) string {
	return strings.TrimSpace(s)
}
