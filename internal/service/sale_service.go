package service

import (
	"context"
	"errors"
	"time"

	"shopledger/internal/dto"
	"shopledger/internal/model"
	"shopledger/internal/repository"
	"shopledger/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Record(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]dto.SaleResponse, error)
}

type saleService struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
	rdb         *redis.Client
	dispatcher  *worker.Dispatcher
	lowStockAt  int
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	rdb *redis.Client,
	dispatcher *worker.Dispatcher,
	lowStockThreshold int,
) SaleService {
	return &saleService{
		repo:        repo,
		productRepo: productRepo,
		rdb:         rdb,
		dispatcher:  dispatcher,
		lowStockAt:  lowStockThreshold,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Record ────────────────────────────────────────────────────────────────────
// Sale recording is the one place in the system that needs cross-row
// atomicity:
//  1. Validate input and resolve the product (pre-flight, outside TX).
//  2. Compute total/profit snapshots from the product's current prices,
//     rounded to 2 decimals (half away from zero).
//  3. BEGIN TX: insert the sale row, then decrement stock with a
//     conditional update (stock_quantity >= qty). Zero matched rows
//     means a concurrent sale won the stock — the TX rolls back and
//     the call fails with InsufficientStock. Either both effects commit
//     or neither does.
//  4. (post-commit) invalidate the report cache; enqueue a low-stock
//     alert if the product fell to or below the threshold.

func (s *saleService) Record(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if req.ProductID == nil {
		return nil, &ValidationError{Msg: "Product is required"}
	}
	if req.Quantity == nil || *req.Quantity <= 0 {
		return nil, &ValidationError{Msg: "Quantity must be a positive number"}
	}
	qty := *req.Quantity

	product, err := s.productRepo.FindByID(ctx, *req.ProductID)
	if err != nil {
		return nil, &NotFoundError{Msg: "Product not found"}
	}
	if product.StockQuantity < qty {
		return nil, &InsufficientStockError{Available: product.StockQuantity, Requested: qty}
	}

	qtyDec := decimal.NewFromInt(int64(qty))
	sale := model.Sale{
		ProductID: product.ID,
		Quantity:  qty,
		Total:     product.SellingPrice.Mul(qtyDec).Round(2),
		Profit:    product.SellingPrice.Sub(product.CostPrice).Mul(qtyDec).Round(2),
		SaleDate:  time.Now().UTC(),
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(ctx, tx, &sale); err != nil {
			return err
		}
		rows, err := s.productRepo.DecrementStockTx(tx, product.ID, qty)
		if err != nil {
			return err
		}
		if rows == 0 {
			// The pre-flight check passed but a concurrent sale drained the
			// stock in between. Report the stock as it stands now.
			available := 0
			if current, err := s.productRepo.FindByIDTx(tx, product.ID); err == nil {
				available = current.StockQuantity
			}
			return &InsufficientStockError{Available: available, Requested: qty}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidateReportCache(ctx)
	s.checkLowStock(ctx, product.ID)

	resp := saleToResponse(&sale)
	resp.ProductName = product.Name
	resp.Message = "Sale recorded successfully"
	return resp, nil
}

// ── Delete ────────────────────────────────────────────────────────────────────
// The exact inverse of Record's stock effect: the sale's original
// quantity is restored, never recomputed. Stock may overshoot physical
// inventory if manual edits happened in between — that is the accepted
// contract, not something to mask.
// The delete itself must match a row before stock moves: a concurrent
// delete of the same sale can commit between the read and the
// transaction, and only the request whose delete matched may increment.

func (s *saleService) Delete(ctx context.Context, id uint) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return &NotFoundError{Msg: "Sale not found"}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteTx(tx, id); err != nil {
			return err
		}
		return s.productRepo.IncrementStockTx(tx, sale.ProductID, sale.Quantity)
	})
	if errors.Is(txErr, gorm.ErrRecordNotFound) {
		return &NotFoundError{Msg: "Sale not found"}
	}
	if txErr != nil {
		return txErr
	}

	s.invalidateReportCache(ctx)
	return nil
}

// List returns the most recent sales with the product name joined in.
func (s *saleService) List(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := s.repo.List(ctx, 100)
	if err != nil {
		return nil, err
	}
	result := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		resp := saleToResponse(&sales[i])
		if sales[i].Product != nil {
			resp.ProductName = sales[i].Product.Name
		}
		result = append(result, *resp)
	}
	return result, nil
}

// invalidateReportCache drops all cached report views after a sale
// mutation. Best-effort: a cache miss is always safe.
func (s *saleService) invalidateReportCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, reportCacheKeys...).Err(); err != nil {
		log.Warn().Err(err).Msg("report cache invalidation failed")
	}
}

// checkLowStock enqueues an alert job when the product's stock fell to
// or below the configured threshold. Fire & forget — an enqueue failure
// never fails the sale.
func (s *saleService) checkLowStock(ctx context.Context, productID uint) {
	if s.dispatcher == nil {
		return
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil || product.StockQuantity > s.lowStockAt {
		return
	}
	payload := worker.LowStockAlertPayload{
		ProductID:   product.ID,
		ProductName: product.Name,
		Stock:       product.StockQuantity,
		Threshold:   s.lowStockAt,
	}
	if err := s.dispatcher.EnqueueLowStockAlert(ctx, payload); err != nil {
		log.Warn().Err(err).Uint("product_id", product.ID).Msg("failed to enqueue low-stock alert")
	}
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		Total:     s.Total,
		Profit:    s.Profit,
		SaleDate:  s.SaleDate.Format(time.RFC3339),
	}
}
