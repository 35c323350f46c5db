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

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo         repository.ProductRepository
	supplierRepo repository.SupplierRepository
	stockRepo    repository.StockRepository
}

func NewProductService(
	repo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	stockRepo repository.StockRepository,
) ProductService {
	return &productService{repo: repo, supplierRepo: supplierRepo, stockRepo: stockRepo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, apperr.Newf(apperr.KindConflict, "SKU %q already exists", req.SKU)
	}

	p := &model.Product{
		SKU:              req.SKU,
		Name:             req.Name,
		Description:      req.Description,
		UnitCost:         req.UnitCost,
		ReorderThreshold: req.ReorderThreshold,
		IsActive:         true,
	}
	if req.DefaultSupplierID != nil {
		supplierID, err := s.resolveSupplier(ctx, *req.DefaultSupplierID)
		if err != nil {
			return nil, err
		}
		p.DefaultSupplierID = supplierID
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "product not found")
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, len(products))
	for i := range products {
		items[i] = *productToResponse(&products[i])
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "product not found")
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.UnitCost != nil {
		p.UnitCost = *req.UnitCost
	}
	if req.ReorderThreshold != nil {
		p.ReorderThreshold = *req.ReorderThreshold
	}
	if req.DefaultSupplierID != nil {
		supplierID, err := s.resolveSupplier(ctx, *req.DefaultSupplierID)
		if err != nil {
			return nil, err
		}
		p.DefaultSupplierID = supplierID
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

// Deactivate soft-deletes a product. Remaining stock anywhere blocks it —
// the ledger would otherwise reference a product that no longer exists.
func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apperr.New(apperr.KindNotFound, "product not found")
	}
	total, err := s.stockRepo.TotalQuantityByProduct(ctx, id)
	if err != nil {
		return err
	}
	if total > 0 {
		return apperr.Newf(apperr.KindConflict,
			"product still has %d units in stock", total)
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apperr.New(apperr.KindNotFound, "product not found")
	}
	return s.repo.Reactivate(ctx, id)
}

func (s *productService) resolveSupplier(ctx context.Context, raw string) (*uuid.UUID, error) {
	supplierID, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.New(apperr.KindInvalidArgument, "invalid default_supplier_id")
	}
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil || !supplier.IsActive {
		return nil, apperr.New(apperr.KindNotFound, "supplier not found")
	}
	return &supplierID, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:               p.ID.String(),
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		UnitCost:         p.UnitCost,
		ReorderThreshold: p.ReorderThreshold,
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.DefaultSupplierID != nil {
		id := p.DefaultSupplierID.String()
		resp.DefaultSupplierID = &id
	}
	return resp
}
