package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AddStockRequest struct {
	ProductID   string `json:"product_id"   validate:"required,uuid4"`
	WarehouseID string `json:"warehouse_id" validate:"required,uuid4"`
	Quantity    int    `json:"quantity"     validate:"required,gt=0"`
}

type RemoveStockRequest struct {
	ProductID   string `json:"product_id"   validate:"required,uuid4"`
	WarehouseID string `json:"warehouse_id" validate:"required,uuid4"`
	Quantity    int    `json:"quantity"     validate:"required,gt=0"`
}

type TransferStockRequest struct {
	ProductID       string `json:"product_id"        validate:"required,uuid4"`
	FromWarehouseID string `json:"from_warehouse_id" validate:"required,uuid4"`
	ToWarehouseID   string `json:"to_warehouse_id"   validate:"required,uuid4"`
	Quantity        int    `json:"quantity"          validate:"required,gt=0"`
}

type StockListFilter struct {
	ProductID   string `form:"product_id"`
	WarehouseID string `form:"warehouse_id"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StockRecordResponse struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name,omitempty"`
	WarehouseID   string  `json:"warehouse_id"`
	WarehouseName string  `json:"warehouse_name,omitempty"`
	Quantity      int     `json:"quantity"`
	LastRestocked *string `json:"last_restocked"`
}

type StockListResponse struct {
	Data  []StockRecordResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// TransferResponse reports both sides of a completed transfer.
type TransferResponse struct {
	Source      StockRecordResponse `json:"source"`
	Destination StockRecordResponse `json:"destination"`
}
