package service

import (
	"testing"
	"time"

	"planboard-service/internal/plan/model"
)

var riskNow = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func TestClassifyRisk_BlankIsUnknown(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "\t"} {
		got := ClassifyRisk(in, 3, riskNow)
		if got.Category != model.RiskUnknown {
			t.Fatalf("ClassifyRisk(%q) = %v, want Unknown", in, got.Category)
		}
		if got.ShortageDate != nil || got.DaysUntil != nil {
			t.Fatalf("blank input should carry no date")
		}
	}
}

func TestClassifyRisk_AllCovered(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"All covered", "all covered", "ALL COVERED until further notice"} {
		got := ClassifyRisk(in, 3, riskNow)
		if got.Category != model.RiskAllCovered {
			t.Fatalf("ClassifyRisk(%q) = %v, want All Covered", in, got.Category)
		}
	}
}

func TestClassifyRisk_FutureDate(t *testing.T) {
	t.Parallel()

	got := ClassifyRisk("Shortage 10/12/2099", 3, riskNow)
	if got.Category != model.RiskFuture {
		t.Fatalf("far future date = %v, want Future", got.Category)
	}
	if got.DaysUntil == nil || *got.DaysUntil <= 3 {
		t.Fatalf("days_until should be > 3, got %v", got.DaysUntil)
	}
	if got.ShortageDate == nil || got.ShortageDate.Year() != 2099 {
		t.Fatalf("shortage date not extracted: %v", got.ShortageDate)
	}
}

func TestClassifyRisk_PastDateIsUrgent(t *testing.T) {
	t.Parallel()

	got := ClassifyRisk("Shortage 01/01/2020", 3, riskNow)
	if got.Category != model.RiskUrgent {
		t.Fatalf("past date = %v, want Urgent", got.Category)
	}
	if got.DaysUntil == nil || *got.DaysUntil >= 0 {
		t.Fatalf("days_until should be negative, got %v", got.DaysUntil)
	}
}

func TestClassifyRisk_UrgentThreshold(t *testing.T) {
	t.Parallel()

	at := ClassifyRisk("cover by "+riskNow.AddDate(0, 0, 3).Format("02/01/2006"), 3, riskNow)
	if at.Category != model.RiskUrgent {
		t.Fatalf("3 days out = %v, want Urgent", at.Category)
	}
	past := ClassifyRisk("cover by "+riskNow.AddDate(0, 0, 4).Format("02/01/2006"), 3, riskNow)
	if past.Category != model.RiskFuture {
		t.Fatalf("4 days out = %v, want Future", past.Category)
	}
}

func TestClassifyRisk_DatelessTextIsFuture(t *testing.T) {
	t.Parallel()

	got := ClassifyRisk("no date here", 3, riskNow)
	if got.Category != model.RiskFuture {
		t.Fatalf("dateless text = %v, want Future (not Unknown)", got.Category)
	}
	if got.ShortageDate != nil {
		t.Fatalf("dateless text should carry no shortage date")
	}
}
