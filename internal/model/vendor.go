package model

import (
	"time"
)

// Vendor is a supplier referenced by products. Vendors are never cascaded:
// deletion is blocked while any product still points at them.
type Vendor struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	Phone     *string
	CreatedAt time.Time

	Products []Product `gorm:"foreignKey:VendorID"`
}
