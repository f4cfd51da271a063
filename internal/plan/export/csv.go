package export

import (
	"encoding/csv"
	"io"
)

// WriteCSV serializes a view as delimited text with canonical column
// headers. Rows are already display-formatted (dates DD/MM/YYYY).
func WriteCSV(w io.Writer, columns []string, rows []map[string]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	line := make([]string, len(columns))
	for _, row := range rows {
		for i, c := range columns {
			line[i] = row[c]
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
