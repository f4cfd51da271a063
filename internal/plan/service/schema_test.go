package service

import (
	"testing"

	"planboard-service/internal/plan/model"
)

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  Works-Order ":          "works order",
		"Next__Uncovered__Order":  "next uncovered order",
		"ORDER VALUE (£)":         "order value",
		"Supplier_Trip_No":        "supplier trip no",
		"machine":                 "machine",
	}
	for in, want := range cases {
		if got := NormalizeHeader(in); got != want {
			t.Fatalf("NormalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func canonicalHeaders(s model.Schema) []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.Name
	}
	return out
}

func TestReconcile_Identity(t *testing.T) {
	t.Parallel()

	for _, schema := range []model.Schema{ProductionSchema(), PurchaseOrderSchema(), LeadTimeSchema()} {
		headers := canonicalHeaders(schema)
		got := Reconcile(headers, schema)
		if len(got) != len(schema) {
			t.Fatalf("identity mapping incomplete: got %d of %d fields: %v", len(got), len(schema), got)
		}
		for _, f := range schema {
			if got[f.Name] != f.Name {
				t.Fatalf("field %s mapped to %q, want itself", f.Name, got[f.Name])
			}
		}
	}
}

func TestReconcile_MessyHeaders(t *testing.T) {
	t.Parallel()

	headers := []string{"  machine ", "CUSTOMER NAME", "Next uncovered order", "Feeds/day", "order value (£)", "Finish Time", "Notes"}
	got := Reconcile(headers, ProductionSchema())

	want := map[string]string{
		model.FieldMachine:            "  machine ",
		model.FieldCustomer:           "CUSTOMER NAME",
		model.FieldNextUncoveredOrder: "Next uncovered order",
		model.FieldFeeds:              "Feeds/day",
		model.FieldOrderValue:         "order value (£)",
		model.FieldFinish:             "Finish Time",
	}
	for f, h := range want {
		if got[f] != h {
			t.Fatalf("field %s mapped to %q, want %q", f, got[f], h)
		}
	}
	if _, ok := got[model.FieldQuantity]; ok {
		t.Fatalf("Quantity should be absent, got %q", got[model.FieldQuantity])
	}
}

func TestReconcile_OrderIndependent(t *testing.T) {
	t.Parallel()

	headers := []string{"Machine", "Customer", "Feeds", "Finish", "Order Value"}
	reversed := []string{"Order Value", "Finish", "Feeds", "Customer", "Machine"}

	a := Reconcile(headers, ProductionSchema())
	b := Reconcile(reversed, ProductionSchema())
	if len(a) != len(b) {
		t.Fatalf("mapping size changed under permutation: %v vs %v", a, b)
	}
	for f, h := range a {
		if b[f] != h {
			t.Fatalf("field %s: %q vs %q under permutation", f, h, b[f])
		}
	}
}

func TestReconcile_SpecificSynonymWins(t *testing.T) {
	t.Parallel()

	headers := []string{"Quantity", "Overall Quantity"}
	got := Reconcile(headers, ProductionSchema())
	if got[model.FieldQuantity] != "Overall Quantity" {
		t.Fatalf("Quantity mapped to %q, want the more specific header", got[model.FieldQuantity])
	}
}

func TestReconcile_FirstFieldWinsTies(t *testing.T) {
	t.Parallel()

	// one header both Machine and nothing else could claim; a second
	// machine-ish header stays unclaimed and passes through
	headers := []string{"Machine", "Machine Speed"}
	got := Reconcile(headers, ProductionSchema())
	if got[model.FieldMachine] != "Machine" {
		t.Fatalf("Machine mapped to %q", got[model.FieldMachine])
	}

	// the trip field sits before supplier so the compound header is not
	// eaten by the bare synonym
	po := Reconcile([]string{"Supplier Trip No", "Supplier Name"}, PurchaseOrderSchema())
	if po[model.FieldSupplierTripNo] != "Supplier Trip No" {
		t.Fatalf("trip mapped to %q", po[model.FieldSupplierTripNo])
	}
	if po[model.FieldSupplier] != "Supplier Name" {
		t.Fatalf("supplier mapped to %q", po[model.FieldSupplier])
	}
}

func TestReconcile_Pure(t *testing.T) {
	t.Parallel()

	headers := []string{"Machine", "Feeds", "Finish"}
	a := Reconcile(headers, ProductionSchema())
	b := Reconcile(headers, ProductionSchema())
	for f, h := range a {
		if b[f] != h {
			t.Fatalf("mapping not deterministic for %s", f)
		}
	}
}
