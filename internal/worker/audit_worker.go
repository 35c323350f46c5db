package worker

// audit_worker.go
// Processes audit events from QueueAudit and appends them to the
// audit_events table. The trail is best-effort: events that cannot be
// written after all retries land in the DLQ for manual inspection.

import (
	"context"
	"encoding/json"

	"github.com/Jaysins/inventory-mgt-backend/internal/model"
	"github.com/Jaysins/inventory-mgt-backend/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxAuditAttempts = 3

// AuditWorker persists audit events dequeued from QueueAudit.
type AuditWorker struct {
	repo repository.AuditRepository
	rdb  *redis.Client
}

func NewAuditWorker(repo repository.AuditRepository, rdb *redis.Client) *AuditWorker {
	return &AuditWorker{repo: repo, rdb: rdb}
}

// Process writes one audit event, retrying transient DB failures.
func (w *AuditWorker) Process(ctx context.Context, raw json.RawMessage) {
	var event model.AuditEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		log.Error().Err(err).Msg("audit_worker: invalid payload")
		return
	}

	err := withRetry(ctx, maxAuditAttempts, func(attempt int) error {
		return w.repo.Create(ctx, &event)
	})
	if err != nil {
		log.Error().Err(err).
			Str("entity_type", event.EntityType).
			Str("action", event.Action).
			Msg("audit_worker: failed to persist event")
		SendToDLQ(ctx, w.rdb, QueueAudit, "audit", raw, err.Error(), maxAuditAttempts)
		return
	}

	log.Debug().
		Str("entity_type", event.EntityType).
		Str("action", event.Action).
		Msg("audit_worker: event persisted")
}
