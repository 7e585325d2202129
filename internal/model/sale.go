package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records one transaction. Total and Profit are snapshots computed
// from the product's prices at the moment of sale, rounded to 2 decimals;
// they never change when the product's prices change later.
type Sale struct {
	ID        uint            `gorm:"primaryKey"`
	ProductID uint            `gorm:"not null;index"`
	Quantity  int             `gorm:"not null"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Profit    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SaleDate  time.Time       `gorm:"not null;index"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
