package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. StockQuantity is mutated only by sale
// recording/deletion and by explicit product updates; SellingPrice is
// strictly greater than CostPrice at all times (enforced in the service).
type Product struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"index;not null"`
	Category      string          `gorm:"not null"`
	VendorID      uint            `gorm:"not null;index"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Vendor *Vendor `gorm:"foreignKey:VendorID"`
}
