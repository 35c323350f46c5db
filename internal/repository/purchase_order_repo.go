package repository

import (
	"context"

	"github.com/Jaysins/inventory-mgt-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilter narrows purchase order listings.
type OrderFilter struct {
	Status      string
	ProductID   *uuid.UUID
	WarehouseID *uuid.UUID
	SupplierID  *uuid.UUID
	Page        int
	Limit       int
}

type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	List(ctx context.Context, filter OrderFilter) ([]model.PurchaseOrder, int64, error)

	// ExistsPending reports whether a PENDING order is already open for the
	// (product, warehouse) pair — the reorder scan's duplicate guard.
	ExistsPending(ctx context.Context, productID, warehouseID uuid.UUID) (bool, error)

	// Used inside transactions — callers must pass the tx instance.
	CreateTx(tx *gorm.DB, o *model.PurchaseOrder) error
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error)
	UpdateTx(tx *gorm.DB, o *model.PurchaseOrder) error
}

type purchaseOrderRepo struct{ db *gorm.DB }

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var o model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Supplier").Preload("Warehouse").
		First(&o, "id = ?", id).Error
	return &o, err
}

func (r *purchaseOrderRepo) List(ctx context.Context, filter OrderFilter) ([]model.PurchaseOrder, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.PurchaseOrder{}).
		Preload("Product").Preload("Supplier").Preload("Warehouse")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.WarehouseID != nil {
		q = q.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.SupplierID != nil {
		q = q.Where("supplier_id = ?", *filter.SupplierID)
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
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	var orders []model.PurchaseOrder
	err := q.Order("order_date DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, total, err
}

func (r *purchaseOrderRepo) ExistsPending(ctx context.Context, productID, warehouseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PurchaseOrder{}).
		Where("product_id = ? AND warehouse_id = ? AND status = ?",
			productID, warehouseID, model.OrderStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *purchaseOrderRepo) CreateTx(tx *gorm.DB, o *model.PurchaseOrder) error {
	return tx.Create(o).Error
}

func (r *purchaseOrderRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error) {
	var o model.PurchaseOrder
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, "id = ?", id).Error
	return &o, err
}

func (r *purchaseOrderRepo) UpdateTx(tx *gorm.DB, o *model.PurchaseOrder) error {
	return tx.Save(o).Error
}
