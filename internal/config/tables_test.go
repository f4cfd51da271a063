package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTables_AliasResolution(t *testing.T) {
	t.Parallel()

	tb := DefaultTables()
	if tb.ResolveMachine("KLETT") != "KO1" {
		t.Fatalf("KLETT should resolve to KO1")
	}
	if tb.ResolveMachine("BO1") != "BO1" {
		t.Fatalf("canonical codes pass through")
	}
	if tb.ResolveMachine("ZZZ") != "ZZZ" {
		t.Fatalf("unknown codes pass through")
	}

	if c, ok := tb.CapacityFor("JC"); !ok || c != 48000 {
		t.Fatalf("CapacityFor(JC) = %v %v, want 48000 via alias", c, ok)
	}
	if _, ok := tb.CapacityFor("ZZZ"); ok {
		t.Fatalf("unknown machine must report no capacity, not an error")
	}
}

func TestLoadTables_Override(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tables.toml")
	body := `
urgent_days = 5

[capacity]
BO1 = 30000.0
NEW = 1000.0

[aliases]
B = "BO1"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tb, err := LoadTables(path)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if tb.UrgentDays != 5 {
		t.Fatalf("urgent_days = %d", tb.UrgentDays)
	}
	if c, ok := tb.CapacityFor("B"); !ok || c != 30000 {
		t.Fatalf("override capacity via alias = %v %v", c, ok)
	}
	// the override replaces the capacity table wholesale
	if _, ok := tb.CapacityFor("KO1"); ok {
		t.Fatalf("default capacities should not survive a full override")
	}
}

func TestLoadTables_EmptyPathUsesDefaults(t *testing.T) {
	t.Parallel()

	tb, err := LoadTables("")
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if tb.UrgentDays != 3 {
		t.Fatalf("urgent_days = %d, want 3", tb.UrgentDays)
	}
}

func TestLoadTables_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadTables(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("missing file should error")
	}
}
