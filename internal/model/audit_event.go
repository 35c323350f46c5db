package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent is an append-only record of a stock mutation or order lifecycle
// transition. Rows are written asynchronously by the audit worker — a failed
// write never fails the operation that produced the event.
type AuditEvent struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntityType string     `gorm:"type:varchar(30);not null;index"` // "stock" | "purchase_order" | "warehouse"
	EntityID   *uuid.UUID `gorm:"type:uuid;index"`
	Action     string     `gorm:"type:varchar(30);not null"` // "add" | "remove" | "transfer" | "created" | "received" | "cancelled"
	Quantity   int        `gorm:"not null;default:0"`
	Detail     string
	CreatedAt  time.Time
}

func (AuditEvent) TableName() string { return "audit_events" }
