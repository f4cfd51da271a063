package fileio

import (
	"strings"
	"testing"
)

func TestGridToMaps_HeaderRowOffset(t *testing.T) {
	t.Parallel()

	grid := [][]string{
		{"Production Plan Week 35", "", ""},
		{"Machine", "Feeds", ""},
		{"BO1", "12000", "extra"},
		{"", "", ""},
		{"KO1", "6000", ""},
	}
	rows, headers := GridToMaps(grid, 2)

	if len(headers) != 3 {
		t.Fatalf("headers: %v", headers)
	}
	if headers[0] != "Machine" || headers[1] != "Feeds" {
		t.Fatalf("headers: %v", headers)
	}
	// blank header cell becomes addressable
	if headers[2] != "Column 3" {
		t.Fatalf("blank header = %q, want Column 3", headers[2])
	}
	// the fully blank row is dropped
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(rows))
	}
	if rows[0]["Machine"] != "BO1" || rows[1]["Feeds"] != "6000" {
		t.Fatalf("rows: %v", rows)
	}
}

func TestGridToMaps_Empty(t *testing.T) {
	t.Parallel()

	rows, headers := GridToMaps(nil, 1)
	if rows != nil || headers != nil {
		t.Fatalf("empty grid: %v %v", rows, headers)
	}
}

func TestReadAnyMaps_CSV(t *testing.T) {
	t.Parallel()

	in := "Machine,Feeds,Finish\nBO1,\"12,000\",01/02/2024\nKO1,6000,\n"
	rows, headers, err := ReadAnyMaps(strings.NewReader(in), "plan.csv", 1)
	if err != nil {
		t.Fatalf("ReadAnyMaps: %v", err)
	}
	if len(headers) != 3 || headers[0] != "Machine" {
		t.Fatalf("headers: %v", headers)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(rows))
	}
	if rows[0]["Feeds"] != "12,000" {
		t.Fatalf("quoted cell: %q", rows[0]["Feeds"])
	}
}

func TestReadAnyMaps_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	if _, _, err := ReadAnyMaps(strings.NewReader(""), "plan.pdf", 1); err == nil {
		t.Fatalf("expected an error for unsupported extensions")
	}
}
