package repository

import (
	"context"
	"time"

	"shopledger/internal/dto"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportRepository runs the read-only aggregation queries behind the
// report views. All numeric aggregates coalesce NULL sums to zero so
// the views never propagate null.
type ReportRepository interface {
	Summary(ctx context.Context) (*dto.SummaryReport, error)
	ProductProfit(ctx context.Context) ([]dto.ProductProfitRow, error)
	VendorProfit(ctx context.Context) ([]dto.VendorProfitRow, error)
	DailySales(ctx context.Context, days int) ([]DailySalesRecord, error)
}

// DailySalesRecord carries the raw calendar day before presentation
// formatting in the service layer.
type DailySalesRecord struct {
	SaleDay       time.Time
	TotalSales    int64
	TotalQuantity int64
	TotalRevenue  decimal.Decimal
	TotalProfit   decimal.Decimal
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) Summary(ctx context.Context) (*dto.SummaryReport, error) {
	var s dto.SummaryReport
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*)                  AS total_sales,
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COALESCE(SUM(total), 0)    AS total_sales_amount,
			COALESCE(SUM(profit), 0)   AS total_profit
		FROM sales
	`).Scan(&s).Error
	return &s, err
}

func (r *reportRepo) ProductProfit(ctx context.Context) ([]dto.ProductProfitRow, error) {
	var rows []dto.ProductProfitRow
	// Left join: products with zero sales still appear with zero aggregates.
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.name,
			COUNT(s.id)                  AS total_sales,
			COALESCE(SUM(s.quantity), 0) AS total_quantity,
			COALESCE(SUM(s.total), 0)    AS total_revenue,
			COALESCE(SUM(s.profit), 0)   AS total_profit,
			p.stock_quantity             AS current_stock
		FROM products p
		LEFT JOIN sales s ON p.id = s.product_id
		GROUP BY p.id, p.name, p.stock_quantity
		ORDER BY total_profit DESC
	`).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) VendorProfit(ctx context.Context) ([]dto.VendorProfitRow, error) {
	var rows []dto.VendorProfitRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			v.id,
			v.name,
			COUNT(s.id)                  AS total_sales,
			COALESCE(SUM(s.quantity), 0) AS total_quantity,
			COALESCE(SUM(s.total), 0)    AS total_revenue,
			COALESCE(SUM(s.profit), 0)   AS total_profit,
			COUNT(DISTINCT p.id)         AS product_count
		FROM vendors v
		LEFT JOIN products p ON v.id = p.vendor_id
		LEFT JOIN sales s ON p.id = s.product_id
		GROUP BY v.id, v.name
		ORDER BY total_profit DESC
	`).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) DailySales(ctx context.Context, days int) ([]DailySalesRecord, error) {
	var rows []DailySalesRecord
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE(sale_date)            AS sale_day,
			COUNT(*)                   AS total_sales,
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COALESCE(SUM(total), 0)    AS total_revenue,
			COALESCE(SUM(profit), 0)   AS total_profit
		FROM sales
		GROUP BY DATE(sale_date)
		ORDER BY sale_day DESC
		LIMIT ?
	`, days).Scan(&rows).Error
	return rows, err
}
