package service_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"shopledger/internal/dto"
	"shopledger/internal/model"
	"shopledger/internal/repository"
	"shopledger/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository for testing.
type stubProductRepo struct {
	products map[uint]*model.Product
	nextID   uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	result := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return errors.New("record not found")
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) ExistsByVendorID(_ context.Context, vendorID uint) (bool, error) {
	for _, p := range r.products {
		if p.VendorID == vendorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uint, qty int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.StockQuantity < qty {
		return 0, nil
	}
	p.StockQuantity -= qty
	return 1, nil
}

func (r *stubProductRepo) IncrementStockTx(_ *gorm.DB, id uint, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("record not found")
	}
	p.StockQuantity += qty
	return nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubSaleRepo is an in-memory SaleRepository for testing.
// dropAfterRead removes the row right after the next FindByID, standing
// in for a concurrent delete committing between the read and the
// transaction.
type stubSaleRepo struct {
	sales         map[uint]*model.Sale
	nextID        uint
	dropAfterRead bool
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uint]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == 0 {
		r.nextID++
		s.ID = r.nextID
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uint) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if r.dropAfterRead {
		r.dropAfterRead = false
		delete(r.sales, id)
		copied := *s
		return &copied, nil
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, limit int) ([]model.Sale, error) {
	result := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SaleDate.After(result[j].SaleDate) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *stubSaleRepo) DeleteTx(_ *gorm.DB, id uint) error {
	if _, ok := r.sales[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.sales, id)
	return nil
}

func (r *stubSaleRepo) ExistsByProductID(_ context.Context, productID uint) (bool, error) {
	for _, s := range r.sales {
		if s.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func buildSaleSvc() (service.SaleService, *stubSaleRepo, *stubProductRepo) {
	productRepo := newStubProductRepo()
	saleRepo := newStubSaleRepo()
	svc := service.NewSaleService(saleRepo, productRepo, nil, nil, 5)
	return svc, saleRepo, productRepo
}

func seedProduct(repo *stubProductRepo, name string, cost, selling float64, stock int) *model.Product {
	p := &model.Product{
		Name:          name,
		Category:      "Tools",
		VendorID:      1,
		CostPrice:     decimal.NewFromFloat(cost),
		SellingPrice:  decimal.NewFromFloat(selling),
		StockQuantity: stock,
	}
	_ = repo.Create(context.Background(), p)
	return p
}

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRecordSale_SnapshotsAndStockDecrement(t *testing.T) {
	svc, saleRepo, productRepo := buildSaleSvc()
	p := seedProduct(productRepo, "Hammer", 10, 15, 5)

	resp, err := svc.Record(context.Background(), dto.RecordSaleRequest{
		ProductID: uintPtr(p.ID),
		Quantity:  intPtr(3),
	})
	require.NoError(t, err)

	assert.Equal(t, "45", resp.Total.String())
	assert.Equal(t, "15", resp.Profit.String())
	assert.Equal(t, "Hammer", resp.ProductName)
	assert.Equal(t, 2, p.StockQuantity)

	stored, err := saleRepo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Quantity)
}

func TestRecordSale_InsufficientStock(t *testing.T) {
	svc, _, productRepo := buildSaleSvc()
	p := seedProduct(productRepo, "Hammer", 10, 15, 5)

	// First sale drains stock to 2; second asks for 3.
	_, err := svc.Record(context.Background(), dto.RecordSaleRequest{ProductID: uintPtr(p.ID), Quantity: intPtr(3)})
	require.NoError(t, err)

	_, err = svc.Record(context.Background(), dto.RecordSaleRequest{ProductID: uintPtr(p.ID), Quantity: intPtr(3)})
	var stockErr *service.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, p.StockQuantity, "failed sale must not touch stock")
}

func TestRecordSale_ProductNotFound(t *testing.T) {
	svc, _, _ := buildSaleSvc()

	_, err := svc.Record(context.Background(), dto.RecordSaleRequest{ProductID: uintPtr(99), Quantity: intPtr(1)})
	var nf *service.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestRecordSale_Validation(t *testing.T) {
	svc, _, productRepo := buildSaleSvc()
	p := seedProduct(productRepo, "Hammer", 10, 15, 5)

	var ve *service.ValidationError

	_, err := svc.Record(context.Background(), dto.RecordSaleRequest{Quantity: intPtr(1)})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Record(context.Background(), dto.RecordSaleRequest{ProductID: uintPtr(p.ID)})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Record(context.Background(), dto.RecordSaleRequest{ProductID: uintPtr(p.ID), Quantity: intPtr(0)})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Record(context.Background(), dto.RecordSaleRequest{ProductID: uintPtr(p.ID), Quantity: intPtr(-2)})
	assert.ErrorAs(t, err, &ve)
}

func TestRecordSale_Rounding(t *testing.T) {
	svc, _, productRepo := buildSaleSvc()
	// 1.115 × 3 = 3.345 → 3.35 (half away from zero);
	// profit (1.115 − 1.00) × 3 = 0.345 → 0.35
	p := seedProduct(productRepo, "Washer", 1.00, 1.115, 10)

	resp, err := svc.Record(context.Background(), dto.RecordSaleRequest{ProductID: uintPtr(p.ID), Quantity: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, "3.35", resp.Total.StringFixed(2))
	assert.Equal(t, "0.35", resp.Profit.StringFixed(2))
}

func TestDeleteSale_RestoresStock(t *testing.T) {
	svc, saleRepo, productRepo := buildSaleSvc()
	p := seedProduct(productRepo, "Hammer", 10, 15, 5)

	resp, err := svc.Record(context.Background(), dto.RecordSaleRequest{ProductID: uintPtr(p.ID), Quantity: intPtr(3)})
	require.NoError(t, err)
	require.Equal(t, 2, p.StockQuantity)

	require.NoError(t, svc.Delete(context.Background(), resp.ID))
	assert.Equal(t, 5, p.StockQuantity, "delete must restore exactly the sale's quantity")

	_, err = saleRepo.FindByID(context.Background(), resp.ID)
	assert.Error(t, err, "sale row must be gone")
}

func TestDeleteSale_LostRaceDoesNotRestoreStock(t *testing.T) {
	svc, saleRepo, productRepo := buildSaleSvc()
	p := seedProduct(productRepo, "Hammer", 10, 15, 5)

	resp, err := svc.Record(context.Background(), dto.RecordSaleRequest{ProductID: uintPtr(p.ID), Quantity: intPtr(3)})
	require.NoError(t, err)
	require.Equal(t, 2, p.StockQuantity)

	// The sale vanishes between our read and our delete. The delete must
	// report not-found and leave stock alone; incrementing here would
	// restore the quantity twice across the two requests.
	saleRepo.dropAfterRead = true
	err = svc.Delete(context.Background(), resp.ID)
	var nf *service.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 2, p.StockQuantity)
}

func TestDeleteSale_NotFound(t *testing.T) {
	svc, _, _ := buildSaleSvc()

	err := svc.Delete(context.Background(), 42)
	var nf *service.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestPriceSnapshotImmutability(t *testing.T) {
	svc, saleRepo, productRepo := buildSaleSvc()
	p := seedProduct(productRepo, "Hammer", 10, 15, 5)

	resp, err := svc.Record(context.Background(), dto.RecordSaleRequest{ProductID: uintPtr(p.ID), Quantity: intPtr(2)})
	require.NoError(t, err)

	// Reprice the product after the fact.
	p.CostPrice = decimal.NewFromFloat(20)
	p.SellingPrice = decimal.NewFromFloat(40)

	stored, err := saleRepo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "30", stored.Total.String(), "total reflects prices at sale time")
	assert.Equal(t, "10", stored.Profit.String(), "profit reflects prices at sale time")
}

func TestStockConservation(t *testing.T) {
	svc, saleRepo, productRepo := buildSaleSvc()
	const initialStock = 20
	p := seedProduct(productRepo, "Hammer", 10, 15, initialStock)

	ctx := context.Background()
	var saleIDs []uint
	for _, qty := range []int{3, 5, 1, 4} {
		resp, err := svc.Record(ctx, dto.RecordSaleRequest{ProductID: uintPtr(p.ID), Quantity: intPtr(qty)})
		require.NoError(t, err)
		saleIDs = append(saleIDs, resp.ID)
	}
	require.NoError(t, svc.Delete(ctx, saleIDs[1])) // undo the 5-unit sale

	// Invariant: stock == initial − Σ(quantity of existing sales)
	outstanding := 0
	for _, s := range must(saleRepo.List(ctx, 100)) {
		outstanding += s.Quantity
	}
	assert.Equal(t, initialStock-outstanding, p.StockQuantity)
	assert.Equal(t, initialStock-3-1-4, p.StockQuantity)
}

func TestListSales_JoinsProductName(t *testing.T) {
	svc, saleRepo, productRepo := buildSaleSvc()
	p := seedProduct(productRepo, "Hammer", 10, 15, 5)

	_, err := svc.Record(context.Background(), dto.RecordSaleRequest{ProductID: uintPtr(p.ID), Quantity: intPtr(1)})
	require.NoError(t, err)

	// Simulate the repository preload.
	for _, s := range saleRepo.sales {
		s.Product = p
	}

	sales, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Hammer", sales[0].ProductName)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
