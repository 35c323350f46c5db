package dto

// SkippedItem records why one eligible stock record did not produce an order.
// The scan is best-effort: one item's failure never aborts the rest.
type SkippedItem struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Reason      string `json:"reason"`
}

// ReorderScanResponse is the bulk result of one reorder scan.
type ReorderScanResponse struct {
	OrdersCreated int             `json:"orders_created"`
	Orders        []OrderResponse `json:"orders"`
	Skipped       []SkippedItem   `json:"skipped"`
}
