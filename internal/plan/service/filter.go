package service

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"planboard-service/internal/plan/model"
)

// ApplyFilter produces a new view over the record set. Predicates are
// row-local and commute; the input slice is never mutated. Suppressed keys
// are subtracted first. An inverted date range (from after to) simply
// matches nothing.
func ApplyFilter(records []model.Record, f model.Filter) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if f.Suppress.Has(rec.Key) {
			continue
		}
		if !matchDateRange(rec, f) {
			continue
		}
		if !matchEquals(rec, f.Equals) {
			continue
		}
		if !matchIn(rec, f.In) {
			continue
		}
		if !matchContains(rec, f.Contains) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchDateRange(rec model.Record, f model.Filter) bool {
	if f.DateField == "" || (f.From.IsZero() && f.To.IsZero()) {
		return true
	}
	d, ok := rec.DateVal(f.DateField)
	if !ok {
		return false
	}
	day := truncateDay(d)
	if !f.From.IsZero() && day.Before(truncateDay(f.From)) {
		return false
	}
	if !f.To.IsZero() && day.After(truncateDay(f.To)) {
		return false
	}
	return true
}

func matchEquals(rec model.Record, eq map[string]string) bool {
	for field, want := range eq {
		if want == "" {
			continue
		}
		if DisplayValue(rec, field) != want {
			return false
		}
	}
	return true
}

func matchIn(rec model.Record, in map[string][]string) bool {
	for field, wants := range in {
		if len(wants) == 0 {
			continue
		}
		got := DisplayValue(rec, field)
		found := false
		for _, w := range wants {
			if got == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func matchContains(rec model.Record, contains map[string]string) bool {
	for field, want := range contains {
		if want == "" {
			continue
		}
		got := strings.ToLower(DisplayValue(rec, field))
		if !strings.Contains(got, strings.ToLower(want)) {
			return false
		}
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FilterKnownDates drops records whose date field is unknown.
func FilterKnownDates(records []model.Record, field string) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if _, ok := rec.DateVal(field); ok {
			out = append(out, rec)
		}
	}
	return out
}

// SortByDate orders a view by a date field, stable, unknown dates last.
func SortByDate(records []model.Record, field string, ascending bool) []model.Record {
	out := make([]model.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		di, oki := out[i].DateVal(field)
		dj, okj := out[j].DateVal(field)
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		if ascending {
			return di.Before(dj)
		}
		return dj.Before(di)
	})
	return out
}

// DueDateChanges keeps rows whose due date moved (Difference != 0).
func DueDateChanges(records []model.Record) []model.Record {
	out := make([]model.Record, 0)
	for _, rec := range records {
		if rec.NumVal(model.FieldDifference) != 0 {
			out = append(out, rec)
		}
	}
	return out
}

// Distinct collects the sorted distinct non-blank display values of a field.
func Distinct(records []model.Record, field string) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		if v := DisplayValue(rec, field); v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// SummarizeProduction computes the headline metrics of a production view.
func SummarizeProduction(records []model.Record) model.Summary {
	s := model.Summary{Orders: len(records)}
	for _, rec := range records {
		s.TotalFeeds += rec.NumVal(model.FieldFeeds)
		s.TotalValue += rec.NumVal(model.FieldOrderValue)
	}
	return s
}

// SummarizePurchaseOrders computes PO line counts, outstanding quantity and
// how many lines are already overdue against the current due date.
func SummarizePurchaseOrders(records []model.Record, now time.Time) model.Summary {
	s := model.Summary{Orders: len(records)}
	today := truncateDay(now)
	for _, rec := range records {
		s.TotalOutstanding += rec.NumVal(model.FieldQtyOutstanding)
		if d, ok := rec.DateVal(model.FieldCurrentDueDate); ok && truncateDay(d).Before(today) {
			s.OverdueLines++
		}
	}
	return s
}

// DisplayValue renders a field for viewing/export: dates UK-style, numbers
// without trailing zeros, derived risk columns synthesized from the
// assessment.
func DisplayValue(rec model.Record, field string) string {
	switch field {
	case model.ColRisk:
		if rec.Risk != nil {
			return string(rec.Risk.Category)
		}
		return ""
	case model.ColRiskFlag:
		if rec.Risk != nil {
			return rec.Risk.Category.Flag()
		}
		return ""
	case model.ColNextShortageDate:
		if rec.Risk != nil && rec.Risk.ShortageDate != nil {
			return DisplayDate(*rec.Risk.ShortageDate)
		}
		return ""
	}
	if d, ok := rec.DateVal(field); ok {
		return DisplayDate(d)
	}
	if n, ok := rec.Num[field]; ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return rec.Text[field]
}

// ViewRows flattens records into display rows for the given columns.
func ViewRows(records []model.Record, columns []string) []map[string]string {
	rows := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		row := make(map[string]string, len(columns))
		for _, c := range columns {
			row[c] = DisplayValue(rec, c)
		}
		rows = append(rows, row)
	}
	return rows
}
