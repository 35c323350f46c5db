package worker

// reorder_cron.go
// Background goroutine that periodically runs the reorder scan so low
// stock is replenished even when nobody hits the scan endpoint.

import (
	"context"
	"time"

	"github.com/Jaysins/inventory-mgt-backend/internal/service"

	"github.com/rs/zerolog/log"
)

// StartReorderCron launches a goroutine that runs a reorder scan every
// interval. It respects the context for graceful shutdown.
func StartReorderCron(ctx context.Context, svc service.ReorderService, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("reorder_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reorder_cron: shutting down")
				return
			case <-ticker.C:
				result, err := svc.Scan(ctx)
				if err != nil {
					log.Error().Err(err).Msg("reorder_cron: scan failed")
					continue
				}
				if result.OrdersCreated > 0 || len(result.Skipped) > 0 {
					log.Info().
						Int("created", result.OrdersCreated).
						Int("skipped", len(result.Skipped)).
						Msg("reorder_cron: scan completed")
				}
			}
		}
	}()
}
