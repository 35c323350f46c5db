package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Jaysins/inventory-mgt-backend/internal/model"
	"github.com/Jaysins/inventory-mgt-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memState is the shared in-memory database the stub repositories operate
// on. memTxRunner snapshots it before each transaction and restores it when
// the transaction function fails, so rollback behavior is observable in
// unit tests without a real database.
type memState struct {
	mu         sync.Mutex
	products   map[uuid.UUID]model.Product
	warehouses map[uuid.UUID]model.Warehouse
	suppliers  map[uuid.UUID]model.Supplier
	stock      map[uuid.UUID]model.StockRecord
	orders     map[uuid.UUID]model.PurchaseOrder
}

func newMemState() *memState {
	return &memState{
		products:   make(map[uuid.UUID]model.Product),
		warehouses: make(map[uuid.UUID]model.Warehouse),
		suppliers:  make(map[uuid.UUID]model.Supplier),
		stock:      make(map[uuid.UUID]model.StockRecord),
		orders:     make(map[uuid.UUID]model.PurchaseOrder),
	}
}

func (s *memState) snapshot() *memState {
	snap := newMemState()
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.warehouses {
		snap.warehouses[k] = v
	}
	for k, v := range s.suppliers {
		snap.suppliers[k] = v
	}
	for k, v := range s.stock {
		snap.stock[k] = v
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	return snap
}

func (s *memState) restore(snap *memState) {
	s.products = snap.products
	s.warehouses = snap.warehouses
	s.suppliers = snap.suppliers
	s.stock = snap.stock
	s.orders = snap.orders
}

func (s *memState) addProduct(p model.Product) model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.products[p.ID] = p
	return p
}

func (s *memState) addWarehouse(w model.Warehouse) model.Warehouse {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	s.warehouses[w.ID] = w
	return w
}

func (s *memState) addSupplier(sup model.Supplier) model.Supplier {
	if sup.ID == uuid.Nil {
		sup.ID = uuid.New()
	}
	s.suppliers[sup.ID] = sup
	return sup
}

func (s *memState) addStock(rec model.StockRecord) model.StockRecord {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	s.stock[rec.ID] = rec
	return rec
}

func (s *memState) stockByPair(productID, warehouseID uuid.UUID) (model.StockRecord, bool) {
	for _, rec := range s.stock {
		if rec.ProductID == productID && rec.WarehouseID == warehouseID {
			return rec, true
		}
	}
	return model.StockRecord{}, false
}

// memTxRunner implements TxRunner over memState. A failing fn restores the
// pre-transaction snapshot — the stub equivalent of a database rollback.
type memTxRunner struct{ state *memState }

func (r *memTxRunner) RunAtomic(ctx context.Context, fn func(tx *gorm.DB) error) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	snap := r.state.snapshot()
	if err := fn(nil); err != nil {
		r.state.restore(snap)
		return err
	}
	return nil
}

// recordingAuditor captures audit events and order notifications in memory.
type recordingAuditor struct {
	events   []model.AuditEvent
	notified []uuid.UUID
}

func (a *recordingAuditor) Record(_ context.Context, event model.AuditEvent) {
	a.events = append(a.events, event)
}

func (a *recordingAuditor) OrderPlaced(_ context.Context, orderID uuid.UUID) {
	a.notified = append(a.notified, orderID)
}

// fixture wires the stub repositories and services around one memState.
type fixture struct {
	state         *memState
	warehouseRepo *stubWarehouseRepo
	stockRepo     *stubStockRepo
	productRepo   *stubProductRepo
	supplierRepo  *stubSupplierRepo
	orderRepo     *stubOrderRepo
	auditor       *recordingAuditor
	tx            TxRunner

	stock      StockService
	warehouses WarehouseService
	orders     PurchaseOrderService
	reorder    ReorderService
}

func newFixture() *fixture {
	state := newMemState()
	f := &fixture{
		state:         state,
		warehouseRepo: &stubWarehouseRepo{state: state},
		stockRepo:     &stubStockRepo{state: state},
		productRepo:   &stubProductRepo{state: state},
		supplierRepo:  &stubSupplierRepo{state: state},
		orderRepo:     &stubOrderRepo{state: state},
		auditor:       &recordingAuditor{},
		tx:            &memTxRunner{state: state},
	}
	f.stock = NewStockService(f.stockRepo, f.productRepo, f.warehouseRepo, f.tx, f.auditor)
	f.warehouses = NewWarehouseService(f.warehouseRepo)
	f.orders = NewPurchaseOrderService(f.orderRepo, f.productRepo, f.supplierRepo,
		f.warehouseRepo, f.stockRepo, f.tx, f.auditor, f.auditor, "/tmp/inventory-test-docs")
	f.reorder = NewReorderService(f.stockRepo, f.orderRepo, f.orders)
	return f
}

// ── Stub repositories ────────────────────────────────────────────────────────

type stubWarehouseRepo struct{ state *memState }

func (r *stubWarehouseRepo) Create(_ context.Context, w *model.Warehouse) error {
	*w = r.state.addWarehouse(*w)
	return nil
}

func (r *stubWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Warehouse, error) {
	if w, ok := r.state.warehouses[id]; ok {
		return &w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubWarehouseRepo) FindByName(_ context.Context, name string) (*model.Warehouse, error) {
	for _, w := range r.state.warehouses {
		if w.Name == name {
			return &w, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubWarehouseRepo) List(_ context.Context, includeInactive bool) ([]model.Warehouse, error) {
	var out []model.Warehouse
	for _, w := range r.state.warehouses {
		if includeInactive || w.IsActive {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubWarehouseRepo) Update(_ context.Context, w *model.Warehouse) error {
	r.state.warehouses[w.ID] = *w
	return nil
}

func (r *stubWarehouseRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	w := r.state.warehouses[id]
	w.IsActive = false
	r.state.warehouses[id] = w
	return nil
}

func (r *stubWarehouseRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	w := r.state.warehouses[id]
	w.IsActive = true
	r.state.warehouses[id] = w
	return nil
}

func (r *stubWarehouseRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Warehouse, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubWarehouseRepo) AdjustOccupancyTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	w, ok := r.state.warehouses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	w.CurrentOccupancy += delta
	r.state.warehouses[id] = w
	return nil
}

type stubStockRepo struct{ state *memState }

func (r *stubStockRepo) FindByPair(_ context.Context, productID, warehouseID uuid.UUID) (*model.StockRecord, error) {
	if rec, ok := r.state.stockByPair(productID, warehouseID); ok {
		return &rec, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubStockRepo) List(_ context.Context, filter repository.StockFilter) ([]model.StockRecord, int64, error) {
	var out []model.StockRecord
	for _, rec := range r.state.stock {
		if filter.ProductID != nil && rec.ProductID != *filter.ProductID {
			continue
		}
		if filter.WarehouseID != nil && rec.WarehouseID != *filter.WarehouseID {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].ID.String(), out[j].ID.String()) < 0
	})
	return out, int64(len(out)), nil
}

func (r *stubStockRepo) ListBelowThreshold(_ context.Context) ([]model.StockRecord, error) {
	var out []model.StockRecord
	for _, rec := range r.state.stock {
		product, ok := r.state.products[rec.ProductID]
		if !ok || !product.IsActive || rec.Quantity >= product.ReorderThreshold {
			continue
		}
		warehouse, ok := r.state.warehouses[rec.WarehouseID]
		if !ok || !warehouse.IsActive {
			continue
		}
		if product.DefaultSupplierID == nil {
			continue
		}
		supplier, ok := r.state.suppliers[*product.DefaultSupplierID]
		if !ok || !supplier.IsActive {
			continue
		}
		p, w, sup := product, warehouse, supplier
		p.DefaultSupplier = &sup
		rec.Product = &p
		rec.Warehouse = &w
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return strings.Compare(out[i].ProductID.String(), out[j].ProductID.String()) < 0
		}
		return strings.Compare(out[i].WarehouseID.String(), out[j].WarehouseID.String()) < 0
	})
	return out, nil
}

func (r *stubStockRepo) TotalQuantityByProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	for _, rec := range r.state.stock {
		if rec.ProductID == productID {
			total += int64(rec.Quantity)
		}
	}
	return total, nil
}

func (r *stubStockRepo) FindByPairForUpdateTx(_ *gorm.DB, productID, warehouseID uuid.UUID) (*model.StockRecord, error) {
	return r.FindByPair(context.Background(), productID, warehouseID)
}

func (r *stubStockRepo) CreateTx(_ *gorm.DB, rec *model.StockRecord) error {
	*rec = r.state.addStock(*rec)
	return nil
}

func (r *stubStockRepo) AdjustQuantityTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	rec, ok := r.state.stock[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rec.Quantity += delta
	if delta > 0 {
		now := time.Now().UTC()
		rec.LastRestocked = &now
	}
	r.state.stock[id] = rec
	return nil
}

type stubProductRepo struct{ state *memState }

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	*p = r.state.addProduct(*p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	if p, ok := r.state.products[id]; ok {
		return &p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.state.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.state.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.state.products[p.ID] = *p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p := r.state.products[id]
	p.IsActive = false
	r.state.products[id] = p
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	p := r.state.products[id]
	p.IsActive = true
	r.state.products[id] = p
	return nil
}

type stubSupplierRepo struct{ state *memState }

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	*s = r.state.addSupplier(*s)
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	if s, ok := r.state.suppliers[id]; ok {
		return &s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSupplierRepo) FindByName(_ context.Context, name string) (*model.Supplier, error) {
	for _, s := range r.state.suppliers {
		if s.Name == name {
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSupplierRepo) List(_ context.Context, includeInactive bool) ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range r.state.suppliers {
		if includeInactive || s.IsActive {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.state.suppliers[s.ID] = *s
	return nil
}

func (r *stubSupplierRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	s := r.state.suppliers[id]
	s.IsActive = false
	r.state.suppliers[id] = s
	return nil
}

type stubOrderRepo struct{ state *memState }

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	o, ok := r.state.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if p, ok := r.state.products[o.ProductID]; ok {
		o.Product = &p
	}
	if s, ok := r.state.suppliers[o.SupplierID]; ok {
		o.Supplier = &s
	}
	if w, ok := r.state.warehouses[o.WarehouseID]; ok {
		o.Warehouse = &w
	}
	return &o, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]model.PurchaseOrder, int64, error) {
	var out []model.PurchaseOrder
	for _, o := range r.state.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].ID.String(), out[j].ID.String()) < 0
	})
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) ExistsPending(_ context.Context, productID, warehouseID uuid.UUID) (bool, error) {
	for _, o := range r.state.orders {
		if o.ProductID == productID && o.WarehouseID == warehouseID && o.Status == model.OrderStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.PurchaseOrder) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	stored := *o
	stored.Product, stored.Supplier, stored.Warehouse = nil, nil, nil
	r.state.orders[o.ID] = stored
	return nil
}

func (r *stubOrderRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error) {
	if o, ok := r.state.orders[id]; ok {
		return &o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOrderRepo) UpdateTx(_ *gorm.DB, o *model.PurchaseOrder) error {
	stored := *o
	stored.Product, stored.Supplier, stored.Warehouse = nil, nil, nil
	r.state.orders[o.ID] = stored
	return nil
}
