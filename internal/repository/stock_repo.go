package repository

import (
	"context"
	"time"

	"github.com/Jaysins/inventory-mgt-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockFilter narrows stock record listings.
type StockFilter struct {
	ProductID   *uuid.UUID
	WarehouseID *uuid.UUID
	Page        int
	Limit       int
}

// StockRepository is the data access contract for the stock ledger.
type StockRepository interface {
	FindByPair(ctx context.Context, productID, warehouseID uuid.UUID) (*model.StockRecord, error)
	List(ctx context.Context, filter StockFilter) ([]model.StockRecord, int64, error)

	// ListBelowThreshold returns the eligible set for the reorder scan:
	// records with quantity below the product's reorder threshold whose
	// product, warehouse, and default supplier are all active. Ordered by
	// (product_id, warehouse_id) so a single scan is deterministic.
	ListBelowThreshold(ctx context.Context) ([]model.StockRecord, error)

	// TotalQuantityByProduct sums on-hand quantity across all warehouses.
	TotalQuantityByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// Used inside transactions — callers must pass the tx instance.
	FindByPairForUpdateTx(tx *gorm.DB, productID, warehouseID uuid.UUID) (*model.StockRecord, error)
	CreateTx(tx *gorm.DB, rec *model.StockRecord) error
	AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) error
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) FindByPair(ctx context.Context, productID, warehouseID uuid.UUID) (*model.StockRecord, error) {
	var rec model.StockRecord
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&rec).Error
	return &rec, err
}

func (r *stockRepo) List(ctx context.Context, filter StockFilter) ([]model.StockRecord, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockRecord{}).
		Preload("Product").Preload("Warehouse")
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.WarehouseID != nil {
		q = q.Where("warehouse_id = ?", *filter.WarehouseID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var records []model.StockRecord
	err := q.Order("product_id, warehouse_id").Offset(offset).Limit(limit).Find(&records).Error
	return records, total, err
}

func (r *stockRepo) ListBelowThreshold(ctx context.Context) ([]model.StockRecord, error) {
	var records []model.StockRecord
	err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = stock_records.product_id").
		Joins("JOIN warehouses ON warehouses.id = stock_records.warehouse_id").
		Joins("JOIN suppliers ON suppliers.id = products.default_supplier_id").
		Where("stock_records.quantity < products.reorder_threshold").
		Where("products.is_active = true AND warehouses.is_active = true AND suppliers.is_active = true").
		Order("stock_records.product_id, stock_records.warehouse_id").
		Preload("Product").
		Preload("Product.DefaultSupplier").
		Preload("Warehouse").
		Find(&records).Error
	return records, err
}

func (r *stockRepo) TotalQuantityByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.StockRecord{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *stockRepo) FindByPairForUpdateTx(tx *gorm.DB, productID, warehouseID uuid.UUID) (*model.StockRecord, error) {
	var rec model.StockRecord
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&rec).Error
	return &rec, err
}

func (r *stockRepo) CreateTx(tx *gorm.DB, rec *model.StockRecord) error {
	return tx.Create(rec).Error
}

func (r *stockRepo) AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	updates := map[string]interface{}{
		"quantity": gorm.Expr("quantity + ?", delta),
	}
	if delta > 0 {
		updates["last_restocked"] = time.Now().UTC()
	}
	return tx.Model(&model.StockRecord{}).Where("id = ?", id).Updates(updates).Error
}
