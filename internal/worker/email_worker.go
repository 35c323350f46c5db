package worker

// email_worker.go
// Processes supplier notification jobs from QueueEmail: renders the
// purchase order PDF and emails it to the supplier via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Jaysins/inventory-mgt-backend/internal/infra"
	"github.com/Jaysins/inventory-mgt-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxEmailAttempts = 3

// OrderEmailJobPayload is the job envelope sent to QueueEmail.
type OrderEmailJobPayload struct {
	OrderID string `json:"order_id"`
}

// EmailWorker notifies suppliers about newly placed purchase orders.
type EmailWorker struct {
	orderRepo   repository.PurchaseOrderRepository
	mailer      *infra.Mailer
	rdb         *redis.Client
	documentDir string
}

func NewEmailWorker(
	orderRepo repository.PurchaseOrderRepository,
	mailer *infra.Mailer,
	rdb *redis.Client,
	documentDir string,
) *EmailWorker {
	return &EmailWorker{orderRepo: orderRepo, mailer: mailer, rdb: rdb, documentDir: documentDir}
}

// Process handles one notification job:
//  1. Load the order with product, supplier and warehouse preloaded
//  2. Render the order sheet PDF
//  3. Email it to the supplier with exponential backoff
//
// Jobs that exhaust their retries go to the DLQ.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload OrderEmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		log.Error().Str("order_id", payload.OrderID).Msg("email_worker: invalid order_id")
		return
	}

	order, err := w.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("email_worker: order not found")
		return
	}
	if order.Supplier == nil || order.Supplier.Email == nil || *order.Supplier.Email == "" {
		log.Warn().Str("order_id", payload.OrderID).Msg("email_worker: supplier has no email — skipping")
		return
	}

	pdfPath, err := infra.GenerateOrderPDF(order, w.documentDir)
	if err != nil {
		log.Warn().Err(err).Str("order_id", payload.OrderID).Msg("email_worker: PDF generation failed, sending without attachment")
		pdfPath = ""
	}

	productName := ""
	if order.Product != nil {
		productName = order.Product.Name
	}
	subject := fmt.Sprintf("Purchase Order %s", order.ID)
	body := fmt.Sprintf(
		"Please find attached purchase order %s.\n\nProduct: %s\nQuantity: %d\nExpected arrival: %s\n",
		order.ID, productName, order.QuantityOrdered,
		order.ExpectedArrivalDate.Format("02 Jan 2006"))

	sendErr := withRetry(ctx, maxEmailAttempts, func(attempt int) error {
		if err := w.mailer.SendOrderNotice(*order.Supplier.Email, subject, body, pdfPath); err != nil {
			log.Warn().Err(err).
				Int("attempt", attempt+1).
				Str("order_id", payload.OrderID).
				Msg("email_worker: send attempt failed")
			return err
		}
		return nil
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("order_id", payload.OrderID).Msg("email_worker: failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueEmail, "order_email", raw, sendErr.Error(), maxEmailAttempts)
		return
	}

	log.Info().Str("to", *order.Supplier.Email).Str("order_id", payload.OrderID).Msg("email_worker: order notice sent")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
