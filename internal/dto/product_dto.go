package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ProductRequest is shared by create and update: both apply the same
// validation sequence in the service layer. Pointer fields distinguish
// "absent" from zero values so missing prices are rejected while a
// missing stock_quantity defaults to 0.
type ProductRequest struct {
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	VendorID      *uint            `json:"vendor_id"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	StockQuantity *int             `json:"stock_quantity"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	VendorID      uint            `json:"vendor_id"`
	VendorName    string          `json:"vendor_name,omitempty"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     string          `json:"created_at"`
	Message       string          `json:"message,omitempty"`
}
