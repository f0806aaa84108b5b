package storage

// Table names, shared by both backends (memory uses them as collection keys).
const (
	TableClients   = "clients"
	TableBranches  = "branches"
	TableMaterials = "materials"
	TableProducts  = "products"
	TableOrders    = "orders"
	TableInvoices  = "invoices"
	TablePayments  = "payments"
	TableShipments = "shipments"
	TableAudit     = "sys_audit"
)

// UniqueKey is a column with a uniqueness constraint.
// Field is the API name reported in the duplicate error.
type UniqueKey struct {
	Column     string
	Field      string
	Constraint string
}

// UniqueKeys lists the constrained columns of each table.
var UniqueKeys = map[string][]UniqueKey{
	TableClients:   {{Column: "email", Field: "email", Constraint: "clients_email_key"}},
	TableInvoices:  {{Column: "invoice_number", Field: "invoiceNumber", Constraint: "invoices_invoice_number_key"}},
	TablePayments:  {{Column: "payment_number", Field: "paymentNumber", Constraint: "payments_payment_number_key"}},
	TableShipments: {{Column: "shipment_number", Field: "shipmentNumber", Constraint: "shipments_shipment_number_key"}},
}

// UniqueKeyByConstraint finds the key behind a constraint name reported by the database.
func UniqueKeyByConstraint(table, constraint string) (UniqueKey, bool) {
	for _, k := range UniqueKeys[table] {
		if k.Constraint == constraint {
			return k, true
		}
	}
	return UniqueKey{}, false
}
