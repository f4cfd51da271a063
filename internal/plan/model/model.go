package model

import "time"

// Kind is the semantic type of a canonical field.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindDate
)

// FieldSpec describes one canonical field: its name, type, and the
// normalized synonym substrings accepted when matching raw headers.
// Synonyms are in priority order; more specific phrases come first.
type FieldSpec struct {
	Name        string
	Kind        Kind
	Synonyms    []string
	ForwardFill bool // carry value down from the previous row (merged cells)
	Upper       bool // upper-case the value after coercion
}

// Schema is an ordered set of canonical fields. Order matters: when two
// fields could claim the same raw header, the earlier field wins.
type Schema []FieldSpec

// Field returns the spec for a canonical name.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// RiskCategory is the discrete delivery-risk bucket for an order.
type RiskCategory string

const (
	RiskUnknown    RiskCategory = "Unknown"
	RiskAllCovered RiskCategory = "All Covered"
	RiskUrgent     RiskCategory = "Urgent"
	RiskFuture     RiskCategory = "Future"
)

// Flag renders the category as the dashboard marker string.
func (c RiskCategory) Flag() string {
	switch c {
	case RiskUrgent:
		return "Urgent (!)"
	case RiskFuture:
		return "Future (~)"
	case RiskAllCovered:
		return "Covered (ok)"
	default:
		return "?"
	}
}

// RiskAssessment is derived per record from the free-text shortage field.
type RiskAssessment struct {
	Category     RiskCategory `json:"category"`
	ShortageDate *time.Time   `json:"shortage_date,omitempty"`
	DaysUntil    *int         `json:"days_until,omitempty"`
}

// Record is one reconciled row. A canonical field that could not be
// resolved from any header is simply absent from all three maps; a numeric
// field whose cell failed coercion is present with value 0; a date field
// whose cell failed coercion is absent from Date (that is "unknown").
// Headers matching no canonical field pass through in Text unrenamed.
type Record struct {
	Key  string               `json:"key"`
	Text map[string]string    `json:"text,omitempty"`
	Num  map[string]float64   `json:"num,omitempty"`
	Date map[string]time.Time `json:"date,omitempty"`
	Risk *RiskAssessment      `json:"risk,omitempty"`
}

// TextVal returns the string value of a field, "" when absent.
func (r Record) TextVal(name string) string { return r.Text[name] }

// NumVal returns the numeric value of a field, 0 when absent.
func (r Record) NumVal(name string) float64 { return r.Num[name] }

// DateVal returns the date value; ok is false when the date is unknown.
func (r Record) DateVal(name string) (time.Time, bool) {
	d, ok := r.Date[name]
	return d, ok
}

// Has reports whether the record carries the field in any of the maps.
func (r Record) Has(name string) bool {
	if _, ok := r.Text[name]; ok {
		return true
	}
	if _, ok := r.Num[name]; ok {
		return true
	}
	_, ok := r.Date[name]
	return ok
}

// UtilisationRow is the per-machine aggregate. Capacity and Utilisation are
// nil when the machine has no entry in the capacity table.
type UtilisationRow struct {
	Machine        string   `json:"machine"`
	Capacity       *float64 `json:"capacity"`
	AvgFeedsPerDay float64  `json:"avg_feeds_per_day"`
	Utilisation    *float64 `json:"utilisation"`
}

// Summary carries the headline metrics for a view. Production views fill
// feeds/value; purchase-order views fill outstanding/overdue.
type Summary struct {
	Orders           int     `json:"orders"`
	TotalFeeds       float64 `json:"total_feeds"`
	TotalValue       float64 `json:"total_value"`
	TotalOutstanding float64 `json:"total_outstanding"`
	OverdueLines     int     `json:"overdue_lines"`
}

// KeySet is a suppression set of record keys, owned by the caller and
// threaded through filter calls. Suppression hides records from views
// without touching the underlying record set.
type KeySet map[string]struct{}

func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		if k != "" {
			s[k] = struct{}{}
		}
	}
	return s
}

func (s KeySet) Has(k string) bool { _, ok := s[k]; return ok }

// Filter describes one view over the record set. All predicates are
// row-local and commute; zero values mean "no constraint".
type Filter struct {
	DateField string    // field the From/To range applies to
	From      time.Time // zero = unbounded below
	To        time.Time // zero = unbounded above
	Equals    map[string]string
	In        map[string][]string
	Contains  map[string]string
	Suppress  KeySet
}

// AnalyzeResult is the response body for a production-plan analysis run.
type AnalyzeResult struct {
	Summary             Summary             `json:"summary"`
	Columns             []string            `json:"columns"`
	Rows                []map[string]string `json:"rows"`
	UtilisationOverall  []UtilisationRow    `json:"utilisation_overall"`
	UtilisationFiltered []UtilisationRow    `json:"utilisation_filtered"`
	Warnings            []string            `json:"warnings,omitempty"`
}

// PurchaseOrderResult is the response body for a purchase-order run.
type PurchaseOrderResult struct {
	Summary        Summary             `json:"summary"`
	Columns        []string            `json:"columns"`
	Rows           []map[string]string `json:"rows"`
	DueDateChanges []map[string]string `json:"due_date_changes"`
	Warnings       []string            `json:"warnings,omitempty"`
}

// LeadTimeResult is the response body for a board lead-time run.
type LeadTimeResult struct {
	Columns  []string            `json:"columns"`
	Rows     []map[string]string `json:"rows"`
	Grades   []string            `json:"grades"`
	Warnings []string            `json:"warnings,omitempty"`
}
