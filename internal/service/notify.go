package service

import (
	"context"

	"github.com/Jaysins/inventory-mgt-backend/internal/model"

	"github.com/google/uuid"
)

// Auditor is the fire-and-forget sink for stock mutations and order
// lifecycle transitions. Implementations must swallow their own failures —
// a broken audit trail never fails the operation that produced the event.
type Auditor interface {
	Record(ctx context.Context, event model.AuditEvent)
}

// OrderNotifier delivers best-effort supplier notifications for newly
// placed purchase orders. Same contract as Auditor: failures are logged
// downstream, never returned.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, orderID uuid.UUID)
}
