package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a stockable item. ReorderThreshold is the minimum on-hand
// quantity per warehouse; falling below it makes the stock record eligible
// for the auto-reorder scan.
type Product struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU               string          `gorm:"uniqueIndex;not null"`
	Name              string          `gorm:"index;not null"`
	Description       *string
	UnitCost          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ReorderThreshold  int             `gorm:"not null;default:0"`
	DefaultSupplierID *uuid.UUID      `gorm:"type:uuid;index"`
	IsActive          bool            `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	DefaultSupplier *Supplier `gorm:"foreignKey:DefaultSupplierID"`
}
