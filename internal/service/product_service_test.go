package service

import (
	"context"
	"testing"

	"github.com/Jaysins/inventory-mgt-backend/internal/apperr"
	"github.com/Jaysins/inventory-mgt-backend/internal/dto"
	"github.com/Jaysins/inventory-mgt-backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(f *fixture) ProductService {
	return NewProductService(f.productRepo, f.supplierRepo, f.stockRepo)
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	f := newFixture()
	svc := newProductService(f)

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "WID-1", Name: "Widget", UnitCost: decimal.NewFromFloat(1.50),
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "WID-1", Name: "Widget v2",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestCreateProductValidatesDefaultSupplier(t *testing.T) {
	f := newFixture()
	svc := newProductService(f)
	inactive := f.state.addSupplier(model.Supplier{Name: "Gone Supply", IsActive: false})

	supplierID := inactive.ID.String()
	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "WID-1", Name: "Widget", DefaultSupplierID: &supplierID,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	active := f.state.addSupplier(model.Supplier{Name: "Acme Supply", IsActive: true})
	supplierID = active.ID.String()
	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "WID-1", Name: "Widget", DefaultSupplierID: &supplierID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.DefaultSupplierID)
	assert.Equal(t, supplierID, *resp.DefaultSupplierID)
}

func TestDeactivateProductBlockedWhileStocked(t *testing.T) {
	f := newFixture()
	svc := newProductService(f)
	product := f.state.addProduct(model.Product{SKU: "WID-1", Name: "Widget", IsActive: true})
	warehouse := f.state.addWarehouse(model.Warehouse{Name: "Main", Location: "North", Capacity: 100, IsActive: true})
	rec := f.state.addStock(model.StockRecord{ProductID: product.ID, WarehouseID: warehouse.ID, Quantity: 8})

	err := svc.Deactivate(context.Background(), product.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.True(t, f.state.products[product.ID].IsActive)

	rec.Quantity = 0
	f.state.stock[rec.ID] = rec

	require.NoError(t, svc.Deactivate(context.Background(), product.ID))
	assert.False(t, f.state.products[product.ID].IsActive)
}

func TestUpdateProductChangesThresholdAndCost(t *testing.T) {
	f := newFixture()
	svc := newProductService(f)
	product := f.state.addProduct(model.Product{
		SKU: "WID-1", Name: "Widget", UnitCost: decimal.NewFromFloat(1.00),
		ReorderThreshold: 10, IsActive: true,
	})

	threshold := 25
	cost := decimal.NewFromFloat(1.75)
	resp, err := svc.Update(context.Background(), product.ID, dto.UpdateProductRequest{
		ReorderThreshold: &threshold,
		UnitCost:         &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, resp.ReorderThreshold)
	assert.True(t, resp.UnitCost.Equal(cost))
	assert.Equal(t, "WID-1", resp.SKU)
}
