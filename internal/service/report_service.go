package service

import (
	"context"
	"encoding/json"
	"time"

	"shopledger/internal/dto"
	"shopledger/internal/infra"
	"shopledger/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// reportCacheKeys lists every cached report view; sale mutations drop
// them all at once.
var reportCacheKeys = []string{
	"reports:summary",
	"reports:product-profit",
	"reports:vendor-profit",
	"reports:daily-sales",
}

const dailySalesDays = 30

type ReportService interface {
	Summary(ctx context.Context) (*dto.SummaryReport, error)
	ProductProfit(ctx context.Context) ([]dto.ProductProfitRow, error)
	VendorProfit(ctx context.Context) ([]dto.VendorProfitRow, error)
	DailySales(ctx context.Context) ([]dto.DailySalesRow, error)
	ExportPDF(ctx context.Context) (string, error)
}

type reportService struct {
	repo        repository.ReportRepository
	rdb         *redis.Client
	cacheTTL    time.Duration
	storagePath string
}

func NewReportService(repo repository.ReportRepository, rdb *redis.Client, cacheTTLSeconds int, storagePath string) ReportService {
	return &reportService{
		repo:        repo,
		rdb:         rdb,
		cacheTTL:    time.Duration(cacheTTLSeconds) * time.Second,
		storagePath: storagePath,
	}
}

func (s *reportService) Summary(ctx context.Context) (*dto.SummaryReport, error) {
	var out dto.SummaryReport
	err := s.cached(ctx, "reports:summary", &out, func() (interface{}, error) {
		return s.repo.Summary(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *reportService) ProductProfit(ctx context.Context) ([]dto.ProductProfitRow, error) {
	var out []dto.ProductProfitRow
	err := s.cached(ctx, "reports:product-profit", &out, func() (interface{}, error) {
		return s.repo.ProductProfit(ctx)
	})
	return out, err
}

func (s *reportService) VendorProfit(ctx context.Context) ([]dto.VendorProfitRow, error) {
	var out []dto.VendorProfitRow
	err := s.cached(ctx, "reports:vendor-profit", &out, func() (interface{}, error) {
		return s.repo.VendorProfit(ctx)
	})
	return out, err
}

func (s *reportService) DailySales(ctx context.Context) ([]dto.DailySalesRow, error) {
	var out []dto.DailySalesRow
	err := s.cached(ctx, "reports:daily-sales", &out, func() (interface{}, error) {
		records, err := s.repo.DailySales(ctx, dailySalesDays)
		if err != nil {
			return nil, err
		}
		rows := make([]dto.DailySalesRow, 0, len(records))
		for _, r := range records {
			rows = append(rows, dto.DailySalesRow{
				Date:          r.SaleDay.Format("Jan 2, 2006"),
				TotalSales:    r.TotalSales,
				TotalQuantity: r.TotalQuantity,
				TotalRevenue:  r.TotalRevenue,
				TotalProfit:   r.TotalProfit,
			})
		}
		return rows, nil
	})
	return out, err
}

// ExportPDF renders the summary figures and the daily-sales table to a
// PDF file and returns its path.
func (s *reportService) ExportPDF(ctx context.Context) (string, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return "", err
	}
	daily, err := s.DailySales(ctx)
	if err != nil {
		return "", err
	}
	return infra.GenerateSalesReportPDF(summary, daily, s.storagePath)
}

// cached reads dest from Redis under key, falling back to fetch on a
// miss (or when no Redis client is wired, e.g. in unit tests). Cache
// failures degrade to the underlying query, never to an error.
func (s *reportService) cached(ctx context.Context, key string, dest interface{}, fetch func() (interface{}, error)) error {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			if err := json.Unmarshal(raw, dest); err == nil {
				return nil
			}
			// Corrupt entry — fall through and recompute.
		}
	}

	fresh, err := fetch()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(fresh)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("report cache write failed")
		}
	}
	return nil
}
