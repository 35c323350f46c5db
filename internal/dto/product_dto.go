package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	SKU               string          `json:"sku"                 validate:"required,min=1"`
	Name              string          `json:"name"                validate:"required,min=2"`
	Description       *string         `json:"description"`
	UnitCost          decimal.Decimal `json:"unit_cost"           validate:"omitempty,min=0"`
	ReorderThreshold  int             `json:"reorder_threshold"   validate:"min=0"`
	DefaultSupplierID *string         `json:"default_supplier_id" validate:"omitempty,uuid4"`
}

type UpdateProductRequest struct {
	Name              string           `json:"name"                validate:"omitempty,min=2"`
	Description       *string          `json:"description"`
	UnitCost          *decimal.Decimal `json:"unit_cost"           validate:"omitempty,min=0"`
	ReorderThreshold  *int             `json:"reorder_threshold"   validate:"omitempty,min=0"`
	DefaultSupplierID *string          `json:"default_supplier_id" validate:"omitempty,uuid4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       *string         `json:"description"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	ReorderThreshold  int             `json:"reorder_threshold"`
	DefaultSupplierID *string         `json:"default_supplier_id"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         string          `json:"created_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
