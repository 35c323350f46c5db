package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateWarehouseRequest struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Location string `json:"location" validate:"required,min=2"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
}

type UpdateWarehouseRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=2"`
	Location string `json:"location" validate:"omitempty,min=2"`
	Capacity *int   `json:"capacity" validate:"omitempty,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type WarehouseResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Location         string `json:"location"`
	Capacity         int    `json:"capacity"`
	CurrentOccupancy int    `json:"current_occupancy"`
	IsActive         bool   `json:"is_active"`
	CreatedAt        string `json:"created_at"`
}

// CapacityResponse is the read-only capacity snapshot for one warehouse.
// Utilization banding: <50% "low", 50-79% "medium", 80-99% "high", >=100% "full".
type CapacityResponse struct {
	WarehouseID       string  `json:"warehouse_id"`
	Capacity          int     `json:"capacity"`
	CurrentOccupancy  int     `json:"current_occupancy"`
	AvailableCapacity int     `json:"available_capacity"`
	UtilizationPct    float64 `json:"utilization_pct"`
	UtilizationBand   string  `json:"utilization_band"`
}
