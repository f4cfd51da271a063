package export

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	columns := []string{"Machine", "Feeds", "Finish"}
	rows := []map[string]string{
		{"Machine": "BO1", "Feeds": "12000", "Finish": "01/02/2024"},
		{"Machine": "KO1", "Feeds": "6000", "Finish": ""},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, columns, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "Machine,Feeds,Finish" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "BO1,12000,01/02/2024" {
		t.Fatalf("row = %q", lines[1])
	}
	if lines[2] != "KO1,6000," {
		t.Fatalf("row with blank cell = %q", lines[2])
	}
}
