package service

import (
	"context"
	"testing"

	"github.com/Jaysins/inventory-mgt-backend/internal/apperr"
	"github.com/Jaysins/inventory-mgt-backend/internal/dto"
	"github.com/Jaysins/inventory-mgt-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAddStockCreatesRecordAndOccupancy(t *testing.T) {
	f := newFixture()
	product := f.state.addProduct(model.Product{SKU: "WID-1", Name: "Widget", IsActive: true})
	warehouse := f.state.addWarehouse(model.Warehouse{Name: "Main", Location: "North", Capacity: 100, IsActive: true})

	resp, err := f.stock.AddStock(context.Background(), dto.AddStockRequest{
		ProductID:   product.ID.String(),
		WarehouseID: warehouse.ID.String(),
		Quantity:    40,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, resp.Quantity)
	assert.NotNil(t, resp.LastRestocked)

	rec, ok := f.state.stockByPair(product.ID, warehouse.ID)
	require.True(t, ok)
	assert.Equal(t, 40, rec.Quantity)
	assert.Equal(t, 40, f.state.warehouses[warehouse.ID].CurrentOccupancy)

	require.Len(t, f.auditor.events, 1)
	assert.Equal(t, "add", f.auditor.events[0].Action)
	assert.Equal(t, 40, f.auditor.events[0].Quantity)
}

func TestAddStockAccumulatesOnExistingRecord(t *testing.T) {
	f := newFixture()
	product := f.state.addProduct(model.Product{SKU: "WID-1", Name: "Widget", IsActive: true})
	warehouse := f.state.addWarehouse(model.Warehouse{Name: "Main", Location: "North", Capacity: 100, CurrentOccupancy: 30, IsActive: true})
	f.state.addStock(model.StockRecord{ProductID: product.ID, WarehouseID: warehouse.ID, Quantity: 30})

	resp, err := f.stock.AddStock(context.Background(), dto.AddStockRequest{
		ProductID:   product.ID.String(),
		WarehouseID: warehouse.ID.String(),
		Quantity:    25,
	})
	require.NoError(t, err)
	assert.Equal(t, 55, resp.Quantity)
	assert.Equal(t, 55, f.state.warehouses[warehouse.ID].CurrentOccupancy)
}

func TestAddStockCapacityExceededLeavesStateUntouched(t *testing.T) {
	f := newFixture()
	product := f.state.addProduct(model.Product{SKU: "WID-1", Name: "Widget", IsActive: true})
	warehouse := f.state.addWarehouse(model.Warehouse{Name: "Small", Location: "South", Capacity: 50, CurrentOccupancy: 45, IsActive: true})

	_, err := f.stock.AddStock(context.Background(), dto.AddStockRequest{
		ProductID:   product.ID.String(),
		WarehouseID: warehouse.ID.String(),
		Quantity:    10,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindCapacityExceeded))

	_, ok := f.state.stockByPair(product.ID, warehouse.ID)
	assert.False(t, ok)
	assert.Equal(t, 45, f.state.warehouses[warehouse.ID].CurrentOccupancy)
	assert.Empty(t, f.auditor.events)
}

func TestAddStockInactiveProductRejected(t *testing.T) {
	f := newFixture()
	product := f.state.addProduct(model.Product{SKU: "OLD-1", Name: "Legacy", IsActive: false})
	warehouse := f.state.addWarehouse(model.Warehouse{Name: "Main", Location: "North", Capacity: 100, IsActive: true})

	_, err := f.stock.AddStock(context.Background(), dto.AddStockRequest{
		ProductID:   product.ID.String(),
		WarehouseID: warehouse.ID.String(),
		Quantity:    5,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRemoveStockInsufficientQuantity(t *testing.T) {
	f := newFixture()
	product := f.state.addProduct(model.Product{SKU: "WID-1", Name: "Widget", IsActive: true})
	warehouse := f.state.addWarehouse(model.Warehouse{Name: "Main", Location: "North", Capacity: 100, CurrentOccupancy: 10, IsActive: true})
	f.state.addStock(model.StockRecord{ProductID: product.ID, WarehouseID: warehouse.ID, Quantity: 10})

	_, err := f.stock.RemoveStock(context.Background(), dto.RemoveStockRequest{
		ProductID:   product.ID.String(),
		WarehouseID: warehouse.ID.String(),
		Quantity:    11,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientStock))

	rec, _ := f.state.stockByPair(product.ID, warehouse.ID)
	assert.Equal(t, 10, rec.Quantity)
	assert.Equal(t, 10, f.state.warehouses[warehouse.ID].CurrentOccupancy)
}

func TestAddThenRemoveRestoresOccupancy(t *testing.T) {
	f := newFixture()
	product := f.state.addProduct(model.Product{SKU: "WID-1", Name: "Widget", IsActive: true})
	warehouse := f.state.addWarehouse(model.Warehouse{Name: "Main", Location: "North", Capacity: 100, IsActive: true})

	_, err := f.stock.AddStock(context.Background(), dto.AddStockRequest{
		ProductID: product.ID.String(), WarehouseID: warehouse.ID.String(), Quantity: 20,
	})
	require.NoError(t, err)
	resp, err := f.stock.RemoveStock(context.Background(), dto.RemoveStockRequest{
		ProductID: product.ID.String(), WarehouseID: warehouse.ID.String(), Quantity: 20,
	})
	require.NoError(t, err)

	// Record survives at zero; occupancy returns to where it started.
	assert.Equal(t, 0, resp.Quantity)
	rec, ok := f.state.stockByPair(product.ID, warehouse.ID)
	require.True(t, ok)
	assert.Equal(t, 0, rec.Quantity)
	assert.Equal(t, 0, f.state.warehouses[warehouse.ID].CurrentOccupancy)
}

func TestRunAtomicRestoresStateOnFailure(t *testing.T) {
	f := newFixture()
	product := f.state.addProduct(model.Product{SKU: "WID-1", Name: "Widget", IsActive: true})
	warehouse := f.state.addWarehouse(model.Warehouse{Name: "Main", Location: "North", Capacity: 100, IsActive: true})

	boom := apperr.New(apperr.KindUnknown, "boom")
	err := f.tx.RunAtomic(context.Background(), func(tx *gorm.DB) error {
		rec := model.StockRecord{ProductID: product.ID, WarehouseID: warehouse.ID, Quantity: 7}
		if err := f.stockRepo.CreateTx(tx, &rec); err != nil {
			return err
		}
		if err := f.warehouseRepo.AdjustOccupancyTx(tx, warehouse.ID, 7); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Partial writes inside the failed transaction are rolled back.
	_, ok := f.state.stockByPair(product.ID, warehouse.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, f.state.warehouses[warehouse.ID].CurrentOccupancy)
}

func TestTransferSameWarehouseRejected(t *testing.T) {
	f := newFixture()
	product := f.state.addProduct(model.Product{SKU: "WID-1", Name: "Widget", IsActive: true})
	warehouse := f.state.addWarehouse(model.Warehouse{Name: "Main", Location: "North", Capacity: 100, CurrentOccupancy: 10, IsActive: true})
	f.state.addStock(model.StockRecord{ProductID: product.ID, WarehouseID: warehouse.ID, Quantity: 10})

	_, err := f.stock.TransferStock(context.Background(), dto.TransferStockRequest{
		ProductID:       product.ID.String(),
		FromWarehouseID: warehouse.ID.String(),
		ToWarehouseID:   warehouse.ID.String(),
		Quantity:        5,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))

	rec, _ := f.state.stockByPair(product.ID, warehouse.ID)
	assert.Equal(t, 10, rec.Quantity)
}

func TestTransferMovesStockBetweenWarehouses(t *testing.T) {
	f := newFixture()
	product := f.state.addProduct(model.Product{SKU: "WID-1", Name: "Widget", IsActive: true})
	src := f.state.addWarehouse(model.Warehouse{Name: "Source", Location: "North", Capacity: 100, CurrentOccupancy: 30, IsActive: true})
	dst := f.state.addWarehouse(model.Warehouse{Name: "Dest", Location: "South", Capacity: 100, IsActive: true})
	f.state.addStock(model.StockRecord{ProductID: product.ID, WarehouseID: src.ID, Quantity: 30})

	resp, err := f.stock.TransferStock(context.Background(), dto.TransferStockRequest{
		ProductID:       product.ID.String(),
		FromWarehouseID: src.ID.String(),
		ToWarehouseID:   dst.ID.String(),
		Quantity:        12,
	})
	require.NoError(t, err)
	assert.Equal(t, 18, resp.Source.Quantity)
	assert.Equal(t, 12, resp.Destination.Quantity)

	assert.Equal(t, 18, f.state.warehouses[src.ID].CurrentOccupancy)
	assert.Equal(t, 12, f.state.warehouses[dst.ID].CurrentOccupancy)
}

func TestTransferDestinationFullRollsBackSource(t *testing.T) {
	f := newFixture()
	product := f.state.addProduct(model.Product{SKU: "WID-1", Name: "Widget", IsActive: true})
	src := f.state.addWarehouse(model.Warehouse{Name: "Source", Location: "North", Capacity: 100, CurrentOccupancy: 30, IsActive: true})
	dst := f.state.addWarehouse(model.Warehouse{Name: "Dest", Location: "South", Capacity: 20, CurrentOccupancy: 15, IsActive: true})
	f.state.addStock(model.StockRecord{ProductID: product.ID, WarehouseID: src.ID, Quantity: 30})

	_, err := f.stock.TransferStock(context.Background(), dto.TransferStockRequest{
		ProductID:       product.ID.String(),
		FromWarehouseID: src.ID.String(),
		ToWarehouseID:   dst.ID.String(),
		Quantity:        10,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindCapacityExceeded))

	// Transaction rolled back — source untouched, no destination record.
	rec, _ := f.state.stockByPair(product.ID, src.ID)
	assert.Equal(t, 30, rec.Quantity)
	assert.Equal(t, 30, f.state.warehouses[src.ID].CurrentOccupancy)
	_, ok := f.state.stockByPair(product.ID, dst.ID)
	assert.False(t, ok)
	assert.Equal(t, 15, f.state.warehouses[dst.ID].CurrentOccupancy)
}
