package service

import (
	"testing"
	"time"

	"planboard-service/internal/plan/model"
)

func buildFixture(t *testing.T) []model.Record {
	t.Helper()
	headers := []string{"Machine", "Customer", "ROW", "Feeds", "Finish", "Next Uncovered Order", "Notes"}
	rows := []map[string]string{
		{"Machine": "bo1", "Customer": "Acme", "ROW": "S-100", "Feeds": "£12,000", "Finish": "01/02/2024", "Next Uncovered Order": "All covered", "Notes": "first"},
		{"Machine": "", "Customer": "", "ROW": "S-101", "Feeds": "6000", "Finish": "02/02/2024", "Next Uncovered Order": "", "Notes": ""},
		{"Machine": "ko1", "Customer": "Bravo", "ROW": "", "Feeds": "bad", "Finish": "nonsense", "Next Uncovered Order": "Shortage 10/12/2099", "Notes": "x"},
	}
	return BuildRecords(rows, headers, ProductionSchema(), BuildOptions{
		DayFirst: true,
		Now:      time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
	})
}

func TestBuildRecords_ForwardFillAndUpper(t *testing.T) {
	t.Parallel()

	recs := buildFixture(t)
	if len(recs) != 3 {
		t.Fatalf("want 3 records, got %d", len(recs))
	}
	if recs[0].TextVal(model.FieldMachine) != "BO1" {
		t.Fatalf("machine not upper-cased: %q", recs[0].TextVal(model.FieldMachine))
	}
	// merged-cell export: the blank second row inherits the block header
	if recs[1].TextVal(model.FieldMachine) != "BO1" {
		t.Fatalf("machine not forward-filled: %q", recs[1].TextVal(model.FieldMachine))
	}
	if recs[1].TextVal(model.FieldCustomer) != "ACME" {
		t.Fatalf("customer not forward-filled: %q", recs[1].TextVal(model.FieldCustomer))
	}
	if recs[2].TextVal(model.FieldMachine) != "KO1" {
		t.Fatalf("fill overran a non-blank row: %q", recs[2].TextVal(model.FieldMachine))
	}
}

func TestBuildRecords_CoercionDefaults(t *testing.T) {
	t.Parallel()

	recs := buildFixture(t)
	if recs[0].NumVal(model.FieldFeeds) != 12000 {
		t.Fatalf("feeds = %v", recs[0].NumVal(model.FieldFeeds))
	}
	// unparseable number defaults to 0, still present
	if v, ok := recs[2].Num[model.FieldFeeds]; !ok || v != 0 {
		t.Fatalf("bad feeds: present=%v value=%v, want present 0", ok, v)
	}
	// unparseable date is absent, not zero
	if _, ok := recs[2].DateVal(model.FieldFinish); ok {
		t.Fatalf("nonsense date should be unknown")
	}
	if d, ok := recs[0].DateVal(model.FieldFinish); !ok || d.Month() != time.February {
		t.Fatalf("finish = %v ok=%v, want 1 Feb 2024", d, ok)
	}
}

func TestBuildRecords_KeysAndPassthrough(t *testing.T) {
	t.Parallel()

	recs := buildFixture(t)
	if recs[0].Key != "S-100" {
		t.Fatalf("key = %q, want the ROW spec", recs[0].Key)
	}
	// no ROW: composite of works order/machine/finish or a uuid, never blank
	if recs[2].Key == "" {
		t.Fatalf("record without ROW must still get a key")
	}
	if recs[0].TextVal("Notes") != "first" {
		t.Fatalf("unmatched header not passed through: %q", recs[0].TextVal("Notes"))
	}
}

func TestBuildRecords_RiskAttached(t *testing.T) {
	t.Parallel()

	recs := buildFixture(t)
	if recs[0].Risk == nil || recs[0].Risk.Category != model.RiskAllCovered {
		t.Fatalf("risk[0] = %+v", recs[0].Risk)
	}
	if recs[1].Risk == nil || recs[1].Risk.Category != model.RiskUnknown {
		t.Fatalf("blank shortage field should be Unknown, got %+v", recs[1].Risk)
	}
	if recs[2].Risk == nil || recs[2].Risk.Category != model.RiskFuture {
		t.Fatalf("dated far shortage should be Future, got %+v", recs[2].Risk)
	}
	if recs[2].Risk.ShortageDate == nil || recs[2].Risk.ShortageDate.Year() != 2099 {
		t.Fatalf("shortage date missing: %+v", recs[2].Risk)
	}
}

func TestBuildRecords_MissingFieldAbsent(t *testing.T) {
	t.Parallel()

	headers := []string{"Feeds"}
	rows := []map[string]string{{"Feeds": "100"}}
	recs := BuildRecords(rows, headers, ProductionSchema(), BuildOptions{DayFirst: true})
	if recs[0].Has(model.FieldFinish) {
		t.Fatalf("unresolved date field should be absent")
	}
	if recs[0].Has(model.FieldOrderValue) {
		t.Fatalf("unresolved numeric field should be absent")
	}
	if recs[0].Risk != nil {
		t.Fatalf("no shortage column: risk should not be derived")
	}
}

func TestFallbackCustomer(t *testing.T) {
	t.Parallel()

	recs := []model.Record{{
		Text: map[string]string{model.FieldSupplier: "Progroup"},
		Num:  map[string]float64{},
		Date: map[string]time.Time{},
	}}
	FallbackCustomer(recs)
	if recs[0].TextVal(model.FieldCustomer) != "Progroup" {
		t.Fatalf("customer fallback: %q", recs[0].TextVal(model.FieldCustomer))
	}
}
