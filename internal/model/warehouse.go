package model

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse tracks storage capacity and how much of it is currently occupied.
// Invariant: 0 <= CurrentOccupancy <= Capacity after every committed transaction.
// Occupancy is the sum of all stock units held, across every product.
type Warehouse struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string    `gorm:"uniqueIndex;not null"`
	Location         string    `gorm:"not null"`
	Capacity         int       `gorm:"not null"`
	CurrentOccupancy int       `gorm:"not null;default:0"`
	IsActive         bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AvailableCapacity returns how many more units the warehouse can hold.
func (w *Warehouse) AvailableCapacity() int {
	return w.Capacity - w.CurrentOccupancy
}

// CanAccommodate reports whether quantity additional units fit.
func (w *Warehouse) CanAccommodate(quantity int) bool {
	return w.AvailableCapacity() >= quantity
}
