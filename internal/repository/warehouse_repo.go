package repository

import (
	"context"

	"github.com/Jaysins/inventory-mgt-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WarehouseRepository defines the data access contract for warehouses.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type WarehouseRepository interface {
	Create(ctx context.Context, w *model.Warehouse) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Warehouse, error)
	FindByName(ctx context.Context, name string) (*model.Warehouse, error)
	List(ctx context.Context, includeInactive bool) ([]model.Warehouse, error)
	Update(ctx context.Context, w *model.Warehouse) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	// FindForUpdateTx takes a row lock so capacity checks and the occupancy
	// increment they guard commit against the same snapshot.
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Warehouse, error)
	AdjustOccupancyTx(tx *gorm.DB, id uuid.UUID, delta int) error
}

type warehouseRepo struct{ db *gorm.DB }

func NewWarehouseRepository(db *gorm.DB) WarehouseRepository { return &warehouseRepo{db: db} }

func (r *warehouseRepo) Create(ctx context.Context, w *model.Warehouse) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *warehouseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Warehouse, error) {
	var w model.Warehouse
	err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error
	return &w, err
}

func (r *warehouseRepo) FindByName(ctx context.Context, name string) (*model.Warehouse, error) {
	var w model.Warehouse
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&w).Error
	return &w, err
}

func (r *warehouseRepo) List(ctx context.Context, includeInactive bool) ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	q := r.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("is_active = true")
	}
	err := q.Find(&warehouses).Error
	return warehouses, err
}

func (r *warehouseRepo) Update(ctx context.Context, w *model.Warehouse) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *warehouseRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Warehouse{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *warehouseRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Warehouse{}).Where("id = ?", id).Update("is_active", true).Error
}

func (r *warehouseRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Warehouse, error) {
	var w model.Warehouse
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, "id = ?", id).Error
	return &w, err
}

func (r *warehouseRepo) AdjustOccupancyTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Warehouse{}).Where("id = ?", id).
		Update("current_occupancy", gorm.Expr("current_occupancy + ?", delta)).Error
}
