package service

import (
	"context"
	"math"

	"github.com/Jaysins/inventory-mgt-backend/internal/dto"
	"github.com/Jaysins/inventory-mgt-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// ReorderService walks the stock ledger for records below their product's
// reorder threshold and raises purchase orders to bring them back up.
type ReorderService interface {
	Scan(ctx context.Context) (*dto.ReorderScanResponse, error)
}

type reorderService struct {
	stockRepo repository.StockRepository
	orderRepo repository.PurchaseOrderRepository
	orders    PurchaseOrderService
}

func NewReorderService(
	stockRepo repository.StockRepository,
	orderRepo repository.PurchaseOrderRepository,
	orders PurchaseOrderService,
) ReorderService {
	return &reorderService{stockRepo: stockRepo, orderRepo: orderRepo, orders: orders}
}

// Scan processes every eligible record independently: a record that cannot
// produce an order lands in the skipped list with its reason, and the scan
// keeps going. Eligibility (below threshold, product/warehouse/supplier all
// active) is resolved by the repository query.
func (s *reorderService) Scan(ctx context.Context) (*dto.ReorderScanResponse, error) {
	records, err := s.stockRepo.ListBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReorderScanResponse{
		Orders:  []dto.OrderResponse{},
		Skipped: []dto.SkippedItem{},
	}

	for i := range records {
		rec := &records[i]
		skip := func(reason string) {
			resp.Skipped = append(resp.Skipped, dto.SkippedItem{
				ProductID:   rec.ProductID.String(),
				WarehouseID: rec.WarehouseID.String(),
				Reason:      reason,
			})
		}

		if rec.Product == nil || rec.Product.DefaultSupplier == nil || rec.Warehouse == nil {
			skip("missing product, supplier or warehouse")
			continue
		}

		pending, err := s.orderRepo.ExistsPending(ctx, rec.ProductID, rec.WarehouseID)
		if err != nil {
			skip(err.Error())
			continue
		}
		if pending {
			skip("pending order exists")
			continue
		}

		available := rec.Warehouse.AvailableCapacity()
		if available <= 0 {
			skip("warehouse at full capacity")
			continue
		}

		threshold := rec.Product.ReorderThreshold
		qty := reorderTarget(threshold) - rec.Quantity
		if qty > available {
			qty = available
		}
		// A clamped order below 10% of the threshold is not worth placing.
		if float64(qty) < float64(threshold)*0.1 {
			skip("insufficient capacity")
			continue
		}

		order, err := s.orders.Create(ctx, dto.CreateOrderRequest{
			ProductID:       rec.ProductID.String(),
			SupplierID:      rec.Product.DefaultSupplier.ID.String(),
			WarehouseID:     rec.WarehouseID.String(),
			QuantityOrdered: qty,
		})
		if err != nil {
			log.Warn().Err(err).
				Str("product_id", rec.ProductID.String()).
				Str("warehouse_id", rec.WarehouseID.String()).
				Msg("reorder scan: order creation failed")
			skip(err.Error())
			continue
		}

		resp.Orders = append(resp.Orders, *order)
		resp.OrdersCreated++
	}

	log.Info().
		Int("eligible", len(records)).
		Int("created", resp.OrdersCreated).
		Int("skipped", len(resp.Skipped)).
		Msg("reorder scan completed")
	return resp, nil
}

// reorderTarget is the post-restock quantity goal: the threshold plus a 20%
// buffer, rounded up.
func reorderTarget(threshold int) int {
	return threshold + int(math.Ceil(float64(threshold)*0.2))
}
