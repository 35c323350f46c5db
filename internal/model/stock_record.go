package model

import (
	"time"

	"github.com/google/uuid"
)

// StockRecord is the on-hand quantity of one product in one warehouse.
// Unique per (product, warehouse) pair; created on the first add/receive and
// incremented/decremented afterwards. Quantity never goes negative — every
// decrement is precondition-checked inside the same transaction that commits it.
type StockRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_warehouse"`
	WarehouseID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_warehouse"`
	Quantity      int       `gorm:"not null;default:0"`
	LastRestocked *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Product   *Product   `gorm:"foreignKey:ProductID"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID"`
}
