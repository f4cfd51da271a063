package service

import (
	"strings"
	"time"

	"planboard-service/internal/plan/model"
)

// ClassifyRisk buckets the free-text "next uncovered order" note.
//
// Blank input is Unknown: the field was never filled in. Non-blank text
// with no parseable date is Future, not Unknown — a note exists, so there
// is a pending shortage, we just cannot date it. That asymmetry is
// deliberate and load-bearing for the dashboard counts.
func ClassifyRisk(text string, urgentDays int, now time.Time) model.RiskAssessment {
	t := strings.TrimSpace(text)
	if t == "" {
		return model.RiskAssessment{Category: model.RiskUnknown}
	}
	if strings.Contains(strings.ToLower(t), "all covered") {
		return model.RiskAssessment{Category: model.RiskAllCovered}
	}
	d, ok := ExtractEmbeddedDate(t)
	if !ok {
		return model.RiskAssessment{Category: model.RiskFuture}
	}
	days := daysBetween(now, d)
	cat := model.RiskFuture
	if days <= urgentDays {
		cat = model.RiskUrgent
	}
	return model.RiskAssessment{Category: cat, ShortageDate: &d, DaysUntil: &days}
}

// daysBetween counts whole calendar days from a to b, negative when b is in
// the past.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	a0 := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	b0 := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(b0.Sub(a0) / (24 * time.Hour))
}
