package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"planboard-service/internal/plan/model"
)

// BuildOptions controls one record-building run.
type BuildOptions struct {
	DayFirst   bool // UK convention; ambiguous numeric dates parse day-first
	UrgentDays int  // shortage dates within this many days are Urgent
	Now        time.Time
}

// BuildRecords reconciles raw string-keyed rows onto the schema and coerces
// values. Forward-fill fields (machine, customer) carry the preceding
// non-blank value down, covering merged-cell exports where only the first
// row of a block names the machine. Unmatched headers pass through in Text
// under their raw names.
func BuildRecords(rows []map[string]string, headers []string, schema model.Schema, opts BuildOptions) []model.Record {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.UrgentDays == 0 {
		opts.UrgentDays = 3
	}

	renamed := Reconcile(headers, schema)
	claimed := make(map[string]bool, len(renamed))
	for _, raw := range renamed {
		claimed[raw] = true
	}

	fill := make(map[string]string)
	out := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		rec := model.Record{
			Text: map[string]string{},
			Num:  map[string]float64{},
			Date: map[string]time.Time{},
		}
		for _, f := range schema {
			raw, ok := renamed[f.Name]
			if !ok {
				continue
			}
			val := strings.TrimSpace(row[raw])
			switch f.Kind {
			case model.KindNumber:
				rec.Num[f.Name] = CoerceNumber(val)
			case model.KindDate:
				if d, ok := CoerceDate(val, opts.DayFirst); ok {
					rec.Date[f.Name] = d
				}
			default:
				if f.Upper {
					val = strings.ToUpper(val)
				}
				if f.ForwardFill {
					if val == "" {
						val = fill[f.Name]
					} else {
						fill[f.Name] = val
					}
				}
				rec.Text[f.Name] = val
			}
		}

		for _, h := range headers {
			if !claimed[h] {
				rec.Text[h] = strings.TrimSpace(row[h])
			}
		}

		if _, ok := renamed[model.FieldNextUncoveredOrder]; ok {
			risk := ClassifyRisk(rec.Text[model.FieldNextUncoveredOrder], opts.UrgentDays, opts.Now)
			rec.Risk = &risk
		}

		rec.Key = recordKey(rec)
		out = append(out, rec)
	}
	return out
}

// recordKey picks a stable identity for suppression: the board spec (ROW)
// when present, else a composite business key, else a fresh uuid. Composite
// collisions between genuinely identical rows are accepted.
func recordKey(rec model.Record) string {
	if v := strings.TrimSpace(rec.Text[model.FieldRow]); v != "" {
		return v
	}
	if v := strings.TrimSpace(rec.Text[model.FieldPONumber]); v != "" {
		parts := []string{v, rec.Text[model.FieldProductCode]}
		if d, ok := rec.DateVal(model.FieldCurrentDueDate); ok {
			parts = append(parts, DisplayDate(d))
		}
		return strings.Join(parts, "|")
	}
	wo := strings.TrimSpace(rec.Text[model.FieldWorksOrder])
	if wo != "" || rec.Text[model.FieldMachine] != "" {
		parts := []string{wo, rec.Text[model.FieldMachine]}
		if d, ok := rec.DateVal(model.FieldFinish); ok {
			parts = append(parts, DisplayDate(d))
		}
		return strings.Join(parts, "|")
	}
	return uuid.NewString()
}

// FallbackCustomer copies the supplier into the customer field for sheets
// that only carry a supplier column.
func FallbackCustomer(records []model.Record) {
	for i := range records {
		if strings.TrimSpace(records[i].Text[model.FieldCustomer]) == "" {
			if s := records[i].Text[model.FieldSupplier]; s != "" {
				records[i].Text[model.FieldCustomer] = s
			}
		}
	}
}
