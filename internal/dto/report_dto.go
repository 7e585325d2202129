package dto

import "github.com/shopspring/decimal"

// Report views sum the stored rounded total/profit snapshots; they are
// never re-derived from raw prices. Missing sums coerce to zero.

type SummaryReport struct {
	TotalSales       int64           `json:"total_sales"`
	TotalQuantity    int64           `json:"total_quantity"`
	TotalSalesAmount decimal.Decimal `json:"total_sales_amount"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
}

type ProductProfitRow struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	TotalSales    int64           `json:"total_sales"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	CurrentStock  int             `json:"current_stock"`
}

type VendorProfitRow struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	TotalSales    int64           `json:"total_sales"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	ProductCount  int64           `json:"product_count"`
}

type DailySalesRow struct {
	Date          string          `json:"date"`
	TotalSales    int64           `json:"total_sales"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
}
