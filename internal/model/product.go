package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity at or below which a product counts as
// running low on the dashboard.
const LowStockThreshold = 5

type Product struct {
	Base
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category string `gorm:"type:varchar(100)" json:"category"`
	Unit     string `gorm:"type:varchar(20)" json:"unit"`

	// Quantity may go negative: over-selling is permitted and only surfaced
	// as a warning, never blocked.
	Quantity int `gorm:"not null;default:0" json:"quantity"`

	SellingPrice decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"sellingPrice"`
	CostPrice    decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"costPrice"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// IsLowStock reports whether the product should appear in low-stock alerts.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= LowStockThreshold
}
