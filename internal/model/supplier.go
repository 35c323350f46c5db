package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is the source purchase orders are placed against.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Email     *string
	Phone     *string
	Address   *string
	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Products []Product `gorm:"foreignKey:DefaultSupplierID"`
}
