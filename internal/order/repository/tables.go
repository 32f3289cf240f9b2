package repository

import "bizledger/internal/domain"

// itemTables names the line-item table of one order kind and its
// foreign key to the header.
type itemTables struct {
	items   string
	orderFK string
}

func tablesFor(kind domain.OrderKind) itemTables {
	if kind == domain.OrderKindPurchase {
		return itemTables{items: "purchase_order_items", orderFK: "po_id"}
	}
	return itemTables{items: "sales_order_items", orderFK: "so_id"}
}
