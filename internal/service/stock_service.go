package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Jaysins/inventory-mgt-backend/internal/apperr"
	"github.com/Jaysins/inventory-mgt-backend/internal/dto"
	"github.com/Jaysins/inventory-mgt-backend/internal/model"
	"github.com/Jaysins/inventory-mgt-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockService is the stock transaction engine: every operation applies its
// quantity change and the warehouse occupancy bookkeeping as one atomic unit.
type StockService interface {
	AddStock(ctx context.Context, req dto.AddStockRequest) (*dto.StockRecordResponse, error)
	RemoveStock(ctx context.Context, req dto.RemoveStockRequest) (*dto.StockRecordResponse, error)
	TransferStock(ctx context.Context, req dto.TransferStockRequest) (*dto.TransferResponse, error)
	List(ctx context.Context, filter dto.StockListFilter) (*dto.StockListResponse, error)
}

type stockService struct {
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	tx            TxRunner
	auditor       Auditor
}

func NewStockService(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	tx TxRunner,
	auditor Auditor,
) StockService {
	return &stockService{
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		tx:            tx,
		auditor:       auditor,
	}
}

// ── AddStock ─────────────────────────────────────────────────────────────────
// Upserts the (product, warehouse) stock record and bumps occupancy.
// The capacity precondition is checked INSIDE the transaction under a row
// lock on the warehouse, so two concurrent adds cannot overcommit capacity.

func (s *stockService) AddStock(ctx context.Context, req dto.AddStockRequest) (*dto.StockRecordResponse, error) {
	if req.Quantity <= 0 {
		return nil, apperr.New(apperr.KindInvalidArgument, "quantity must be positive")
	}
	productID, warehouseID, err := parsePair(req.ProductID, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil || !product.IsActive {
		return nil, apperr.New(apperr.KindNotFound, "product not found")
	}

	var record model.StockRecord
	txErr := s.tx.RunAtomic(ctx, func(tx *gorm.DB) error {
		warehouse, err := s.warehouseRepo.FindForUpdateTx(tx, warehouseID)
		if err != nil || !warehouse.IsActive {
			return apperr.New(apperr.KindNotFound, "warehouse not found")
		}
		if warehouse.AvailableCapacity() < req.Quantity {
			return apperr.Newf(apperr.KindCapacityExceeded,
				"warehouse %s cannot accommodate %d units (available: %d)",
				warehouse.Name, req.Quantity, warehouse.AvailableCapacity())
		}

		existing, err := s.stockRepo.FindByPairForUpdateTx(tx, productID, warehouseID)
		if err != nil {
			now := time.Now().UTC()
			record = model.StockRecord{
				ProductID:     productID,
				WarehouseID:   warehouseID,
				Quantity:      req.Quantity,
				LastRestocked: &now,
			}
			if err := s.stockRepo.CreateTx(tx, &record); err != nil {
				return err
			}
		} else {
			if err := s.stockRepo.AdjustQuantityTx(tx, existing.ID, req.Quantity); err != nil {
				return err
			}
			now := time.Now().UTC()
			existing.Quantity += req.Quantity
			existing.LastRestocked = &now
			record = *existing
		}

		return s.warehouseRepo.AdjustOccupancyTx(tx, warehouseID, req.Quantity)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.audit(ctx, productID, "add", req.Quantity,
		fmt.Sprintf("added %d units of %s to warehouse %s", req.Quantity, product.Name, warehouseID))
	return stockToResponse(&record), nil
}

// ── RemoveStock ──────────────────────────────────────────────────────────────

func (s *stockService) RemoveStock(ctx context.Context, req dto.RemoveStockRequest) (*dto.StockRecordResponse, error) {
	if req.Quantity <= 0 {
		return nil, apperr.New(apperr.KindInvalidArgument, "quantity must be positive")
	}
	productID, warehouseID, err := parsePair(req.ProductID, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	var record model.StockRecord
	txErr := s.tx.RunAtomic(ctx, func(tx *gorm.DB) error {
		existing, err := s.stockRepo.FindByPairForUpdateTx(tx, productID, warehouseID)
		if err != nil {
			return apperr.New(apperr.KindNotFound, "no stock record for this product and warehouse")
		}
		if existing.Quantity < req.Quantity {
			return apperr.Newf(apperr.KindInsufficientStock,
				"insufficient stock: have %d, requested %d", existing.Quantity, req.Quantity)
		}

		if err := s.stockRepo.AdjustQuantityTx(tx, existing.ID, -req.Quantity); err != nil {
			return err
		}
		existing.Quantity -= req.Quantity
		record = *existing

		return s.warehouseRepo.AdjustOccupancyTx(tx, warehouseID, -req.Quantity)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.audit(ctx, productID, "remove", -req.Quantity,
		fmt.Sprintf("removed %d units from warehouse %s", req.Quantity, warehouseID))
	return stockToResponse(&record), nil
}

// ── TransferStock ────────────────────────────────────────────────────────────
// Moves quantity between warehouses as one atomic unit spanning up to four
// row mutations (source stock, source occupancy, destination stock,
// destination occupancy). Warehouse rows are locked in id order so two
// opposing transfers cannot deadlock.

func (s *stockService) TransferStock(ctx context.Context, req dto.TransferStockRequest) (*dto.TransferResponse, error) {
	if req.Quantity <= 0 {
		return nil, apperr.New(apperr.KindInvalidArgument, "quantity must be positive")
	}
	if req.FromWarehouseID == req.ToWarehouseID {
		return nil, apperr.New(apperr.KindInvalidArgument, "source and destination warehouses must differ")
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.New(apperr.KindInvalidArgument, "invalid product_id")
	}
	fromID, err := uuid.Parse(req.FromWarehouseID)
	if err != nil {
		return nil, apperr.New(apperr.KindInvalidArgument, "invalid from_warehouse_id")
	}
	toID, err := uuid.Parse(req.ToWarehouseID)
	if err != nil {
		return nil, apperr.New(apperr.KindInvalidArgument, "invalid to_warehouse_id")
	}

	var source, destination model.StockRecord
	txErr := s.tx.RunAtomic(ctx, func(tx *gorm.DB) error {
		warehouses := make(map[uuid.UUID]*model.Warehouse, 2)
		for _, id := range lockOrder(fromID, toID) {
			w, err := s.warehouseRepo.FindForUpdateTx(tx, id)
			if err != nil || !w.IsActive {
				return apperr.Newf(apperr.KindNotFound, "warehouse %s not found", id)
			}
			warehouses[id] = w
		}

		src, err := s.stockRepo.FindByPairForUpdateTx(tx, productID, fromID)
		if err != nil {
			return apperr.New(apperr.KindNotFound, "no stock record in source warehouse")
		}
		if src.Quantity < req.Quantity {
			return apperr.Newf(apperr.KindInsufficientStock,
				"insufficient stock in source: have %d, requested %d", src.Quantity, req.Quantity)
		}
		if warehouses[toID].AvailableCapacity() < req.Quantity {
			return apperr.Newf(apperr.KindCapacityExceeded,
				"destination warehouse %s cannot accommodate %d units (available: %d)",
				warehouses[toID].Name, req.Quantity, warehouses[toID].AvailableCapacity())
		}

		if err := s.stockRepo.AdjustQuantityTx(tx, src.ID, -req.Quantity); err != nil {
			return err
		}
		if err := s.warehouseRepo.AdjustOccupancyTx(tx, fromID, -req.Quantity); err != nil {
			return err
		}
		src.Quantity -= req.Quantity
		source = *src

		dst, err := s.stockRepo.FindByPairForUpdateTx(tx, productID, toID)
		if err != nil {
			now := time.Now().UTC()
			destination = model.StockRecord{
				ProductID:     productID,
				WarehouseID:   toID,
				Quantity:      req.Quantity,
				LastRestocked: &now,
			}
			if err := s.stockRepo.CreateTx(tx, &destination); err != nil {
				return err
			}
		} else {
			if err := s.stockRepo.AdjustQuantityTx(tx, dst.ID, req.Quantity); err != nil {
				return err
			}
			dst.Quantity += req.Quantity
			destination = *dst
		}

		return s.warehouseRepo.AdjustOccupancyTx(tx, toID, req.Quantity)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.audit(ctx, productID, "transfer", req.Quantity,
		fmt.Sprintf("transferred %d units from warehouse %s to %s", req.Quantity, fromID, toID))
	return &dto.TransferResponse{
		Source:      *stockToResponse(&source),
		Destination: *stockToResponse(&destination),
	}, nil
}

func (s *stockService) List(ctx context.Context, filter dto.StockListFilter) (*dto.StockListResponse, error) {
	repoFilter := repository.StockFilter{Page: filter.Page, Limit: filter.Limit}
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
	if repoFilter.Page < 1 {
		repoFilter.Page = 1
	}
	if repoFilter.Limit < 1 {
		repoFilter.Limit = 50
	}

	records, total, err := s.stockRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, *stockToResponse(&records[i]))
	}
	return &dto.StockListResponse{
		Data:  items,
		Total: total,
		Page:  repoFilter.Page,
		Limit: repoFilter.Limit,
	}, nil
}

func (s *stockService) audit(ctx context.Context, productID uuid.UUID, action string, quantity int, detail string) {
	if s.auditor == nil {
		return
	}
	id := productID
	s.auditor.Record(ctx, model.AuditEvent{
		EntityType: "stock",
		EntityID:   &id,
		Action:     action,
		Quantity:   quantity,
		Detail:     detail,
	})
}

func parsePair(productID, warehouseID string) (uuid.UUID, uuid.UUID, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperr.New(apperr.KindInvalidArgument, "invalid product_id")
	}
	wid, err := uuid.Parse(warehouseID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperr.New(apperr.KindInvalidArgument, "invalid warehouse_id")
	}
	return pid, wid, nil
}

// lockOrder yields the two warehouse ids in a stable order so every
// transaction acquires its row locks the same way.
func lockOrder(a, b uuid.UUID) []uuid.UUID {
	if strings.Compare(a.String(), b.String()) <= 0 {
		return []uuid.UUID{a, b}
	}
	return []uuid.UUID{b, a}
}

func stockToResponse(rec *model.StockRecord) *dto.StockRecordResponse {
	resp := &dto.StockRecordResponse{
		ID:          rec.ID.String(),
		ProductID:   rec.ProductID.String(),
		WarehouseID: rec.WarehouseID.String(),
		Quantity:    rec.Quantity,
	}
	if rec.Product != nil {
		resp.ProductName = rec.Product.Name
	}
	if rec.Warehouse != nil {
		resp.WarehouseName = rec.Warehouse.Name
	}
	if rec.LastRestocked != nil {
		ts := rec.LastRestocked.UTC().Format(time.RFC3339)
		resp.LastRestocked = &ts
	}
	return resp
}
