package export

import (
	"fmt"
	"io"

	excelize "github.com/xuri/excelize/v2"
)

// WriteXLSX serializes a view as a single-sheet workbook, the download
// format the planners actually re-import elsewhere.
func WriteXLSX(w io.Writer, sheet string, columns []string, rows []map[string]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if def := f.GetSheetName(0); def != sheet {
		_ = f.DeleteSheet(def)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, row := range rows {
		cells := make([]interface{}, len(columns))
		for j, c := range columns {
			cells[j] = row[c]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}
