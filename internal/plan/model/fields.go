package model

// Canonical field names. Spelled the way the downstream sheets spell them so
// that an already-canonical header reconciles onto itself.
const (
	FieldMachine            = "Machine"
	FieldCustomer           = "Customer"
	FieldRow                = "ROW"
	FieldWorksOrder         = "Works_Order"
	FieldFeeds              = "Feeds"
	FieldQuantity           = "Quantity"
	FieldOrderValue         = "Order_Value"
	FieldNextUncoveredOrder = "Next_Uncovered_Order"
	FieldFinish             = "Finish"
	FieldRunDecision        = "Run_Decision"

	FieldPONumber          = "PO_Number"
	FieldSupplier          = "Supplier"
	FieldSupplierTripNo    = "Supplier_Trip_No"
	FieldProductCode       = "Product_Code"
	FieldQtyOrdered        = "Qty_Ordered"
	FieldQtyDelivered      = "Qty_Delivered"
	FieldQtyOutstanding    = "Qty_Outstanding"
	FieldFreeStock         = "Free_Stock"
	FieldOrigDueDate       = "Orig_Due_Date"
	FieldCurrentDueDate    = "Current_Due_Date"
	FieldDifference        = "Difference"
	FieldAcknowledgeDate   = "Acknowledge_Date"
	FieldActiveWorksOrders = "Active_Works_Orders"
	FieldWODueDate         = "WO_Due_Date"

	FieldBoardGrade = "Board_Grade"
	FieldLeadTime   = "Lead_Time"
)

// Derived display-only columns.
const (
	ColNextShortageDate = "Next_Shortage_Date"
	ColRisk             = "Risk"
	ColRiskFlag         = "Risk_Flag"
)
