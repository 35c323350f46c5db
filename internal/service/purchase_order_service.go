package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Jaysins/inventory-mgt-backend/internal/apperr"
	"github.com/Jaysins/inventory-mgt-backend/internal/dto"
	"github.com/Jaysins/inventory-mgt-backend/internal/infra"
	"github.com/Jaysins/inventory-mgt-backend/internal/model"
	"github.com/Jaysins/inventory-mgt-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultLeadTimeDays is used when an order omits both the expected arrival
// date and an explicit lead time.
const DefaultLeadTimeDays = 3

const orderDateLayout = "2006-01-02"

// PurchaseOrderService drives the order state machine:
// PENDING --receive--> RECEIVED, PENDING --cancel--> CANCELLED.
// RECEIVED and CANCELLED are terminal.
type PurchaseOrderService interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderListFilter) (*dto.OrderListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	Receive(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)

	// Document renders the order sheet PDF and returns the file path.
	Document(ctx context.Context, id uuid.UUID) (string, error)
}

type purchaseOrderService struct {
	repo          repository.PurchaseOrderRepository
	productRepo   repository.ProductRepository
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockRepository
	tx            TxRunner
	auditor       Auditor
	notifier      OrderNotifier
	documentDir   string
}

func NewPurchaseOrderService(
	repo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
	tx TxRunner,
	auditor Auditor,
	notifier OrderNotifier,
	documentDir string,
) PurchaseOrderService {
	return &purchaseOrderService{
		repo:          repo,
		productRepo:   productRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		tx:            tx,
		auditor:       auditor,
		notifier:      notifier,
		documentDir:   documentDir,
	}
}

// ── Create ───────────────────────────────────────────────────────────────────
// The creation-time capacity check is a soft reservation: occupancy is not
// decremented until receipt, so it only guards against orders that obviously
// cannot fit. Receive re-validates under lock before committing stock.

func (s *purchaseOrderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if req.QuantityOrdered <= 0 {
		return nil, apperr.New(apperr.KindInvalidArgument, "quantity_ordered must be positive")
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.New(apperr.KindInvalidArgument, "invalid product_id")
	}
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, apperr.New(apperr.KindInvalidArgument, "invalid supplier_id")
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return nil, apperr.New(apperr.KindInvalidArgument, "invalid warehouse_id")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil || !product.IsActive {
		return nil, apperr.New(apperr.KindNotFound, "product not found")
	}
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil || !supplier.IsActive {
		return nil, apperr.New(apperr.KindNotFound, "supplier not found")
	}

	orderDate := time.Now().UTC()
	if req.OrderDate != nil {
		orderDate, err = time.Parse(orderDateLayout, *req.OrderDate)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidArgument, "invalid order_date")
		}
	}

	leadTime := DefaultLeadTimeDays
	if req.LeadTimeDays != nil {
		if *req.LeadTimeDays <= 0 {
			return nil, apperr.New(apperr.KindInvalidArgument, "lead_time_days must be positive")
		}
		leadTime = *req.LeadTimeDays
	}
	expectedArrival := orderDate.AddDate(0, 0, leadTime)
	if req.ExpectedArrivalDate != nil {
		expectedArrival, err = time.Parse(orderDateLayout, *req.ExpectedArrivalDate)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidArgument, "invalid expected_arrival_date")
		}
	}

	order := &model.PurchaseOrder{
		ProductID:           productID,
		SupplierID:          supplierID,
		WarehouseID:         warehouseID,
		QuantityOrdered:     req.QuantityOrdered,
		UnitCost:            product.UnitCost,
		TotalCost:           product.UnitCost.Mul(decimal.NewFromInt(int64(req.QuantityOrdered))),
		OrderDate:           orderDate,
		ExpectedArrivalDate: expectedArrival,
		Status:              model.OrderStatusPending,
		Notes:               req.Notes,
	}

	txErr := s.tx.RunAtomic(ctx, func(tx *gorm.DB) error {
		warehouse, err := s.warehouseRepo.FindForUpdateTx(tx, warehouseID)
		if err != nil || !warehouse.IsActive {
			return apperr.New(apperr.KindNotFound, "warehouse not found")
		}
		if !warehouse.CanAccommodate(req.QuantityOrdered) {
			return apperr.Newf(apperr.KindCapacityExceeded,
				"warehouse %s cannot accommodate %d units (available: %d)",
				warehouse.Name, req.QuantityOrdered, warehouse.AvailableCapacity())
		}
		return s.repo.CreateTx(tx, order)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.audit(ctx, order.ID, "created",
		fmt.Sprintf("ordered %d units of %s from %s", order.QuantityOrdered, product.Name, supplier.Name))
	if s.notifier != nil {
		s.notifier.OrderPlaced(ctx, order.ID)
	}
	return s.Get(ctx, order.ID)
}

func (s *purchaseOrderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "purchase order not found")
	}
	return orderToResponse(order), nil
}

func (s *purchaseOrderService) List(ctx context.Context, filter dto.OrderListFilter) (*dto.OrderListResponse, error) {
	repoFilter := repository.OrderFilter{Status: filter.Status, Page: filter.Page, Limit: filter.Limit}
	if filter.ProductID != "" {
		id, err := uuid.Parse(filter.ProductID)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidArgument, "invalid product_id")
		}
		repoFilter.ProductID = &id
	}
	if filter.WarehouseID != "" {
		id, err := uuid.Parse(filter.WarehouseID)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidArgument, "invalid warehouse_id")
		}
		repoFilter.WarehouseID = &id
	}
	if filter.SupplierID != "" {
		id, err := uuid.Parse(filter.SupplierID)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidArgument, "invalid supplier_id")
		}
		repoFilter.SupplierID = &id
	}
	if repoFilter.Page < 1 {
		repoFilter.Page = 1
	}
	if repoFilter.Limit < 1 {
		repoFilter.Limit = 50
	}

	orders, total, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{
		Data:  items,
		Total: total,
		Page:  repoFilter.Page,
		Limit: repoFilter.Limit,
	}, nil
}

// ── Update ───────────────────────────────────────────────────────────────────
// Only PENDING orders may change. A quantity increase re-checks the capacity
// delta under the warehouse row lock.

func (s *purchaseOrderService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	txErr := s.tx.RunAtomic(ctx, func(tx *gorm.DB) error {
		order, err := s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return apperr.New(apperr.KindNotFound, "purchase order not found")
		}
		if !order.IsPending() {
			return apperr.Newf(apperr.KindInvalidState,
				"cannot update order in status %s", order.Status)
		}

		if req.QuantityOrdered != nil && *req.QuantityOrdered != order.QuantityOrdered {
			if *req.QuantityOrdered <= 0 {
				return apperr.New(apperr.KindInvalidArgument, "quantity_ordered must be positive")
			}
			delta := *req.QuantityOrdered - order.QuantityOrdered
			if delta > 0 {
				warehouse, err := s.warehouseRepo.FindForUpdateTx(tx, order.WarehouseID)
				if err != nil {
					return apperr.New(apperr.KindNotFound, "warehouse not found")
				}
				if warehouse.AvailableCapacity() < delta {
					return apperr.Newf(apperr.KindCapacityExceeded,
						"warehouse cannot accommodate %d additional units (available: %d)",
						delta, warehouse.AvailableCapacity())
				}
			}
			order.QuantityOrdered = *req.QuantityOrdered
			order.TotalCost = order.UnitCost.Mul(decimal.NewFromInt(int64(*req.QuantityOrdered)))
		}
		if req.ExpectedArrivalDate != nil {
			expected, err := time.Parse(orderDateLayout, *req.ExpectedArrivalDate)
			if err != nil {
				return apperr.New(apperr.KindInvalidArgument, "invalid expected_arrival_date")
			}
			order.ExpectedArrivalDate = expected
		}
		if req.Notes != nil {
			order.Notes = req.Notes
		}
		return s.repo.UpdateTx(tx, order)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, id)
}

// Cancel transitions PENDING → CANCELLED. No ledger side effects: nothing
// was ever committed to stock or occupancy.
func (s *purchaseOrderService) Cancel(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	txErr := s.tx.RunAtomic(ctx, func(tx *gorm.DB) error {
		order, err := s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return apperr.New(apperr.KindNotFound, "purchase order not found")
		}
		if !order.IsPending() {
			return apperr.Newf(apperr.KindInvalidState,
				"cannot cancel order in status %s", order.Status)
		}
		order.Status = model.OrderStatusCancelled
		return s.repo.UpdateTx(tx, order)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.audit(ctx, id, "cancelled", "purchase order cancelled")
	return s.Get(ctx, id)
}

// ── Receive ──────────────────────────────────────────────────────────────────
// The one point where the soft reservation from Create materializes into
// occupancy. Status flip, stock upsert and occupancy increment commit as a
// single transaction, with capacity re-validated under the warehouse lock.

func (s *purchaseOrderService) Receive(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	txErr := s.tx.RunAtomic(ctx, func(tx *gorm.DB) error {
		order, err := s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return apperr.New(apperr.KindNotFound, "purchase order not found")
		}
		if !order.IsPending() {
			return apperr.Newf(apperr.KindInvalidState,
				"cannot receive order in status %s", order.Status)
		}

		warehouse, err := s.warehouseRepo.FindForUpdateTx(tx, order.WarehouseID)
		if err != nil {
			return apperr.New(apperr.KindNotFound, "warehouse not found")
		}
		if warehouse.AvailableCapacity() < order.QuantityOrdered {
			return apperr.Newf(apperr.KindCapacityExceeded,
				"warehouse %s cannot accommodate %d units (available: %d)",
				warehouse.Name, order.QuantityOrdered, warehouse.AvailableCapacity())
		}

		existing, err := s.stockRepo.FindByPairForUpdateTx(tx, order.ProductID, order.WarehouseID)
		if err != nil {
			now := time.Now().UTC()
			rec := model.StockRecord{
				ProductID:     order.ProductID,
				WarehouseID:   order.WarehouseID,
				Quantity:      order.QuantityOrdered,
				LastRestocked: &now,
			}
			if err := s.stockRepo.CreateTx(tx, &rec); err != nil {
				return err
			}
		} else if err := s.stockRepo.AdjustQuantityTx(tx, existing.ID, order.QuantityOrdered); err != nil {
			return err
		}

		if err := s.warehouseRepo.AdjustOccupancyTx(tx, order.WarehouseID, order.QuantityOrdered); err != nil {
			return err
		}

		now := time.Now().UTC()
		order.Status = model.OrderStatusReceived
		order.ActualArrivalDate = &now
		return s.repo.UpdateTx(tx, order)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.audit(ctx, id, "received", "purchase order received into stock")
	return s.Get(ctx, id)
}

func (s *purchaseOrderService) Document(ctx context.Context, id uuid.UUID) (string, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", apperr.New(apperr.KindNotFound, "purchase order not found")
	}
	return infra.GenerateOrderPDF(order, s.documentDir)
}

func (s *purchaseOrderService) audit(ctx context.Context, orderID uuid.UUID, action, detail string) {
	if s.auditor == nil {
		return
	}
	id := orderID
	s.auditor.Record(ctx, model.AuditEvent{
		EntityType: "purchase_order",
		EntityID:   &id,
		Action:     action,
		Detail:     detail,
	})
}

func orderToResponse(o *model.PurchaseOrder) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:                  o.ID.String(),
		ProductID:           o.ProductID.String(),
		SupplierID:          o.SupplierID.String(),
		WarehouseID:         o.WarehouseID.String(),
		QuantityOrdered:     o.QuantityOrdered,
		UnitCost:            o.UnitCost,
		TotalCost:           o.TotalCost,
		OrderDate:           o.OrderDate.UTC().Format(orderDateLayout),
		ExpectedArrivalDate: o.ExpectedArrivalDate.UTC().Format(orderDateLayout),
		Status:              o.Status,
		Notes:               o.Notes,
	}
	if o.Product != nil {
		resp.ProductName = o.Product.Name
	}
	if o.Supplier != nil {
		resp.SupplierName = o.Supplier.Name
	}
	if o.Warehouse != nil {
		resp.WarehouseName = o.Warehouse.Name
	}
	if o.ActualArrivalDate != nil {
		ts := o.ActualArrivalDate.UTC().Format(time.RFC3339)
		resp.ActualArrivalDate = &ts
	}
	return resp
}
