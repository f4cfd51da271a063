package service

import (
	"regexp"
	"strings"

	"planboard-service/internal/plan/model"
)

var rxHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// NormalizeHeader folds a raw header for matching: lower-case, NBSP variants
// to plain spaces, punctuation/underscores/hyphens collapsed to single
// spaces.
func NormalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", " ", " ", " ").Replace(s)
	s = rxHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// Reconcile maps canonical fields onto raw headers by normalized substring
// containment. For each schema field, synonyms are tried in priority order
// (more specific phrases first) and raw headers scanned in original order;
// the first unclaimed header that contains the synonym is taken. A header
// claimed by an earlier schema field is never reassigned, so schema order is
// the tie-break. Fields with no matching header are absent from the result.
// Pure: same headers in, same mapping out.
func Reconcile(headers []string, schema model.Schema) map[string]string {
	norm := make([]string, len(headers))
	for i, h := range headers {
		norm[i] = NormalizeHeader(h)
	}

	claimed := make(map[int]bool, len(headers))
	out := make(map[string]string, len(schema))

	for _, f := range schema {
	match:
		for _, syn := range f.Synonyms {
			for i, n := range norm {
				if claimed[i] || n == "" {
					continue
				}
				if strings.Contains(n, syn) {
					claimed[i] = true
					out[f.Name] = headers[i]
					break match
				}
			}
		}
	}
	return out
}

// ProductionSchema covers the planning board ("CTI") sheet.
func ProductionSchema() model.Schema {
	return model.Schema{
		{Name: model.FieldMachine, Kind: model.KindString, Synonyms: []string{"machine"}, ForwardFill: true, Upper: true},
		{Name: model.FieldCustomer, Kind: model.KindString, Synonyms: []string{"customer"}, ForwardFill: true, Upper: true},
		{Name: model.FieldNextUncoveredOrder, Kind: model.KindString, Synonyms: []string{"next uncovered", "uncovered order"}},
		{Name: model.FieldWorksOrder, Kind: model.KindString, Synonyms: []string{"works order", "wo"}},
		{Name: model.FieldRow, Kind: model.KindString, Synonyms: []string{"row", "spec"}},
		{Name: model.FieldFeeds, Kind: model.KindNumber, Synonyms: []string{"feeds"}},
		{Name: model.FieldQuantity, Kind: model.KindNumber, Synonyms: []string{"overall quantity", "quantity", "qty"}},
		{Name: model.FieldOrderValue, Kind: model.KindNumber, Synonyms: []string{"order value", "value"}},
		{Name: model.FieldFinish, Kind: model.KindDate, Synonyms: []string{"finish"}},
		{Name: model.FieldRunDecision, Kind: model.KindString, Synonyms: []string{"run decision"}},
	}
}

// PurchaseOrderSchema covers the incoming purchase-orders sheet. The trip
// field sits before the supplier field so "Supplier Trip No" is not eaten by
// the bare "supplier" synonym.
func PurchaseOrderSchema() model.Schema {
	return model.Schema{
		{Name: model.FieldPONumber, Kind: model.KindString, Synonyms: []string{"po number", "po no", "purchase order"}},
		{Name: model.FieldSupplierTripNo, Kind: model.KindString, Synonyms: []string{"supplier trip", "trip no", "trip"}},
		{Name: model.FieldSupplier, Kind: model.KindString, Synonyms: []string{"supplier name", "supplier"}},
		{Name: model.FieldProductCode, Kind: model.KindString, Synonyms: []string{"product code", "product"}},
		{Name: model.FieldQtyOrdered, Kind: model.KindNumber, Synonyms: []string{"qty ordered", "quantity ordered"}},
		{Name: model.FieldQtyDelivered, Kind: model.KindNumber, Synonyms: []string{"qty delivered", "quantity delivered"}},
		{Name: model.FieldQtyOutstanding, Kind: model.KindNumber, Synonyms: []string{"qty outstanding", "outstanding"}},
		{Name: model.FieldFreeStock, Kind: model.KindNumber, Synonyms: []string{"free stock"}},
		{Name: model.FieldOrigDueDate, Kind: model.KindDate, Synonyms: []string{"orig due date", "orig due", "original due"}},
		{Name: model.FieldCurrentDueDate, Kind: model.KindDate, Synonyms: []string{"current due date", "current due"}},
		{Name: model.FieldAcknowledgeDate, Kind: model.KindDate, Synonyms: []string{"acknowledge"}},
		{Name: model.FieldWODueDate, Kind: model.KindDate, Synonyms: []string{"w o due", "wo due"}},
		{Name: model.FieldDifference, Kind: model.KindNumber, Synonyms: []string{"difference", "diff"}},
		{Name: model.FieldActiveWorksOrders, Kind: model.KindString, Synonyms: []string{"active works orders", "works order"}},
		{Name: model.FieldCustomer, Kind: model.KindString, Synonyms: []string{"customer"}},
	}
}

// LeadTimeSchema covers the board-grade lead-time sheet.
func LeadTimeSchema() model.Schema {
	return model.Schema{
		{Name: model.FieldBoardGrade, Kind: model.KindString, Synonyms: []string{"board grade", "grade"}},
		{Name: model.FieldLeadTime, Kind: model.KindDate, Synonyms: []string{"lead time", "lead"}},
	}
}
