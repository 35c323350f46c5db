package service

import (
	"context"
	"time"

	"github.com/Jaysins/inventory-mgt-backend/internal/apperr"
	"github.com/Jaysins/inventory-mgt-backend/internal/dto"
	"github.com/Jaysins/inventory-mgt-backend/internal/model"
	"github.com/Jaysins/inventory-mgt-backend/internal/repository"

	"github.com/google/uuid"
)

type WarehouseService interface {
	Create(ctx context.Context, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.WarehouseResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.WarehouseResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	CheckCapacity(ctx context.Context, id uuid.UUID) (*dto.CapacityResponse, error)
}

type warehouseService struct {
	repo repository.WarehouseRepository
}

func NewWarehouseService(repo repository.WarehouseRepository) WarehouseService {
	return &warehouseService{repo: repo}
}

func (s *warehouseService) Create(ctx context.Context, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if req.Capacity <= 0 {
		return nil, apperr.New(apperr.KindInvalidArgument, "capacity must be positive")
	}
	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, apperr.Newf(apperr.KindConflict, "warehouse %q already exists", req.Name)
	}
	w := &model.Warehouse{
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return warehouseToResponse(w), nil
}

func (s *warehouseService) Get(ctx context.Context, id uuid.UUID) (*dto.WarehouseResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "warehouse not found")
	}
	return warehouseToResponse(w), nil
}

func (s *warehouseService) List(ctx context.Context, includeInactive bool) ([]dto.WarehouseResponse, error) {
	warehouses, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.WarehouseResponse, len(warehouses))
	for i := range warehouses {
		resp[i] = *warehouseToResponse(&warehouses[i])
	}
	return resp, nil
}

func (s *warehouseService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "warehouse not found")
	}
	if req.Name != "" && req.Name != w.Name {
		if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
			return nil, apperr.Newf(apperr.KindConflict, "warehouse %q already exists", req.Name)
		}
		w.Name = req.Name
	}
	if req.Location != "" {
		w.Location = req.Location
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, apperr.New(apperr.KindInvalidArgument, "capacity must be positive")
		}
		// Shrinking below current occupancy would break the ledger invariant.
		if *req.Capacity < w.CurrentOccupancy {
			return nil, apperr.Newf(apperr.KindInvalidArgument,
				"capacity %d is below current occupancy %d", *req.Capacity, w.CurrentOccupancy)
		}
		w.Capacity = *req.Capacity
	}
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return warehouseToResponse(w), nil
}

// Deactivate soft-deletes a warehouse. Only an empty warehouse may go —
// occupied capacity means stock records still reference it.
func (s *warehouseService) Deactivate(ctx context.Context, id uuid.UUID) error {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.New(apperr.KindNotFound, "warehouse not found")
	}
	if w.CurrentOccupancy > 0 {
		return apperr.Newf(apperr.KindConflict,
			"warehouse still holds %d units of stock", w.CurrentOccupancy)
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *warehouseService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apperr.New(apperr.KindNotFound, "warehouse not found")
	}
	return s.repo.Reactivate(ctx, id)
}

// CheckCapacity is a pure read against the warehouse state at call time.
// Nothing is reserved between this check and a later mutation — mutating
// operations re-validate capacity inside their own transactions.
func (s *warehouseService) CheckCapacity(ctx context.Context, id uuid.UUID) (*dto.CapacityResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "warehouse not found")
	}
	pct := float64(w.CurrentOccupancy) / float64(w.Capacity) * 100
	return &dto.CapacityResponse{
		WarehouseID:       w.ID.String(),
		Capacity:          w.Capacity,
		CurrentOccupancy:  w.CurrentOccupancy,
		AvailableCapacity: w.AvailableCapacity(),
		UtilizationPct:    pct,
		UtilizationBand:   capacityBand(pct),
	}, nil
}

// capacityBand maps utilization percent to its reporting band:
// <50 "low", 50-79 "medium", 80-99 "high", >=100 "full".
func capacityBand(pct float64) string {
	switch {
	case pct >= 100:
		return "full"
	case pct >= 80:
		return "high"
	case pct >= 50:
		return "medium"
	default:
		return "low"
	}
}

func warehouseToResponse(w *model.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:               w.ID.String(),
		Name:             w.Name,
		Location:         w.Location,
		Capacity:         w.Capacity,
		CurrentOccupancy: w.CurrentOccupancy,
		IsActive:         w.IsActive,
		CreatedAt:        w.CreatedAt.UTC().Format(time.RFC3339),
	}
}
