package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateOrderRequest struct {
	ProductID           string  `json:"product_id"            validate:"required,uuid4"`
	SupplierID          string  `json:"supplier_id"           validate:"required,uuid4"`
	WarehouseID         string  `json:"warehouse_id"          validate:"required,uuid4"`
	QuantityOrdered     int     `json:"quantity_ordered"      validate:"required,gt=0"`
	Notes               *string `json:"notes"`
	OrderDate           *string `json:"order_date"            validate:"omitempty,datetime=2006-01-02"`
	ExpectedArrivalDate *string `json:"expected_arrival_date" validate:"omitempty,datetime=2006-01-02"`
	LeadTimeDays        *int    `json:"lead_time_days"        validate:"omitempty,gt=0"`
}

// UpdateOrderRequest mutates a PENDING order only.
type UpdateOrderRequest struct {
	QuantityOrdered     *int    `json:"quantity_ordered"      validate:"omitempty,gt=0"`
	ExpectedArrivalDate *string `json:"expected_arrival_date" validate:"omitempty,datetime=2006-01-02"`
	Notes               *string `json:"notes"`
}

type OrderListFilter struct {
	Status      string `form:"status"`
	ProductID   string `form:"product_id"`
	WarehouseID string `form:"warehouse_id"`
	SupplierID  string `form:"supplier_id"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderResponse struct {
	ID                  string          `json:"id"`
	ProductID           string          `json:"product_id"`
	ProductName         string          `json:"product_name,omitempty"`
	SupplierID          string          `json:"supplier_id"`
	SupplierName        string          `json:"supplier_name,omitempty"`
	WarehouseID         string          `json:"warehouse_id"`
	WarehouseName       string          `json:"warehouse_name,omitempty"`
	QuantityOrdered     int             `json:"quantity_ordered"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	OrderDate           string          `json:"order_date"`
	ExpectedArrivalDate string          `json:"expected_arrival_date"`
	ActualArrivalDate   *string         `json:"actual_arrival_date"`
	Status              string          `json:"status"`
	Notes               *string         `json:"notes"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
