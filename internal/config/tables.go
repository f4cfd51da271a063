package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Tables holds the fixed lookup tables the analytics run against: rated
// feeds-per-day capacity per machine and the alias map from short codes to
// canonical machine codes. UrgentDays is the shortage-risk threshold.
type Tables struct {
	Capacity   map[string]float64 `toml:"capacity"`
	Aliases    map[string]string  `toml:"aliases"`
	UrgentDays int                `toml:"urgent_days"`
}

// DefaultTables returns the built-in plant configuration.
func DefaultTables() Tables {
	return Tables{
		Capacity: map[string]float64{
			"BO1": 24000,
			"KO1": 50000,
			"JC1": 48000,
			"TCY": 9000,
			"KO3": 15000,
		},
		Aliases: map[string]string{
			"JC":     "JC1",
			"BO":     "BO1",
			"KLETT":  "KO1",
			"KLETT3": "KO3",
		},
		UrgentDays: 3,
	}
}

// LoadTables reads the TOML override when path is non-empty, falling back to
// the defaults for any section the file leaves out.
func LoadTables(path string) (Tables, error) {
	t := DefaultTables()
	if path == "" {
		return t, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tables file: %w", err)
	}
	var override Tables
	if err := toml.Unmarshal(b, &override); err != nil {
		return t, fmt.Errorf("parse tables file: %w", err)
	}
	if len(override.Capacity) > 0 {
		t.Capacity = override.Capacity
	}
	if len(override.Aliases) > 0 {
		t.Aliases = override.Aliases
	}
	if override.UrgentDays > 0 {
		t.UrgentDays = override.UrgentDays
	}
	return t, nil
}

// ResolveMachine maps a short or alternate machine code onto its canonical
// code. Unknown codes pass through unchanged.
func (t Tables) ResolveMachine(code string) string {
	if canon, ok := t.Aliases[code]; ok {
		return canon
	}
	return code
}

// CapacityFor looks up rated capacity, resolving aliases first. The second
// return is false when no capacity is known for the machine.
func (t Tables) CapacityFor(code string) (float64, bool) {
	cap, ok := t.Capacity[t.ResolveMachine(code)]
	return cap, ok
}
