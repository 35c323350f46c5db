package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase order status values. RECEIVED and CANCELLED are terminal.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusReceived  = "RECEIVED"
	OrderStatusCancelled = "CANCELLED"
)

// PurchaseOrder is mutated only through the lifecycle operations
// (create, update-while-pending, cancel, receive). Receiving is the single
// point where the ordered quantity materializes into stock and occupancy.
type PurchaseOrder struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantityOrdered     int             `gorm:"not null"`
	UnitCost            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalCost           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OrderDate           time.Time       `gorm:"not null"`
	ExpectedArrivalDate time.Time       `gorm:"not null"`
	ActualArrivalDate   *time.Time
	Status              string `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Notes               *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Product   *Product   `gorm:"foreignKey:ProductID"`
	Supplier  *Supplier  `gorm:"foreignKey:SupplierID"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID"`
}

// IsPending reports whether lifecycle mutations are still allowed.
func (o *PurchaseOrder) IsPending() bool { return o.Status == OrderStatusPending }
