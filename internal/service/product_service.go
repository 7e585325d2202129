package service

import (
	"context"
	"strings"
	"time"

	"shopledger/internal/dto"
	"shopledger/internal/model"
	"shopledger/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ProductService defines the business logic contract for products.
type ProductService interface {
	Create(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uint, req dto.ProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	repo       repository.ProductRepository
	vendorRepo repository.VendorRepository
	saleRepo   repository.SaleRepository
	rdb        *redis.Client
}

func NewProductService(
	repo repository.ProductRepository,
	vendorRepo repository.VendorRepository,
	saleRepo repository.SaleRepository,
	rdb *redis.Client,
) ProductService {
	return &productService{repo: repo, vendorRepo: vendorRepo, saleRepo: saleRepo, rdb: rdb}
}

// validated holds the outcome of the ordered input checks shared by
// create and update.
type validated struct {
	name     string
	category string
	vendorID uint
	stock    int
}

// validateInput applies the required checks in order; the first failure
// wins. A missing stock_quantity defaults to 0 and is not an error.
func (s *productService) validateInput(ctx context.Context, req dto.ProductRequest) (*validated, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &ValidationError{Msg: "Product name is required"}
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, &ValidationError{Msg: "Category is required"}
	}
	if req.VendorID == nil {
		return nil, &ValidationError{Msg: "Vendor is required"}
	}
	if _, err := s.vendorRepo.FindByID(ctx, *req.VendorID); err != nil {
		return nil, &ValidationError{Msg: "Vendor not found"}
	}
	if req.CostPrice == nil || req.CostPrice.IsNegative() {
		return nil, &ValidationError{Msg: "Cost price must be a non-negative number"}
	}
	if req.SellingPrice == nil || !req.SellingPrice.GreaterThan(*req.CostPrice) {
		return nil, &ValidationError{Msg: "Selling price must be greater than cost price"}
	}
	stock := 0
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, &ValidationError{Msg: "Stock quantity cannot be negative"}
		}
		stock = *req.StockQuantity
	}
	return &validated{name: name, category: category, vendorID: *req.VendorID, stock: stock}, nil
}

func (s *productService) Create(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error) {
	v, err := s.validateInput(ctx, req)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:          v.name,
		Category:      v.category,
		VendorID:      v.vendorID,
		CostPrice:     *req.CostPrice,
		SellingPrice:  *req.SellingPrice,
		StockQuantity: v.stock,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateReportCache(ctx)

	resp := productToResponse(product)
	resp.Message = "Product created successfully"
	return resp, nil
}

func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, *productToResponse(&products[i]))
	}
	return result, nil
}

func (s *productService) Update(ctx context.Context, id uint, req dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Msg: "Product not found"}
	}

	v, err := s.validateInput(ctx, req)
	if err != nil {
		return nil, err
	}

	product.Name = v.name
	product.Category = v.category
	product.VendorID = v.vendorID
	product.CostPrice = *req.CostPrice
	product.SellingPrice = *req.SellingPrice
	product.StockQuantity = v.stock
	product.Vendor = nil // force a fresh join on the next read

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateReportCache(ctx)

	resp := productToResponse(product)
	resp.Message = "Product updated successfully"
	return resp, nil
}

// Delete is a guarded delete: it refuses while any sale references the
// product, so historic sales keep a valid product row behind them.
func (s *productService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return &NotFoundError{Msg: "Product not found"}
	}

	hasSales, err := s.saleRepo.ExistsByProductID(ctx, id)
	if err != nil {
		return err
	}
	if hasSales {
		return &ConflictError{Msg: "Cannot delete product with recorded sales"}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReportCache(ctx)
	return nil
}

// invalidateReportCache drops the cached report views — a stock or
// catalog edit changes current_stock and the per-vendor rollups, so
// the reports must not serve them stale for the rest of the TTL.
func (s *productService) invalidateReportCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, reportCacheKeys...).Err(); err != nil {
		log.Warn().Err(err).Msg("report cache invalidation failed")
	}
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	vendorName := ""
	if p.Vendor != nil {
		vendorName = p.Vendor.Name
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		VendorID:      p.VendorID,
		VendorName:    vendorName,
		CostPrice:     p.CostPrice,
		SellingPrice:  p.SellingPrice,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}
