package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxBuy  TransactionType = "buy"
	TxSell TransactionType = "sell"
)

// Transaction is an immutable stock movement: it can be created and deleted,
// never updated. ProductName and UnitPrice are snapshots taken at creation time
// and do not track later changes to the product.
type Transaction struct {
	Base

	// Seq is a monotonic insertion counter. It breaks ordering ties between
	// transactions whose createdAt collide at coarse timestamp resolution.
	Seq int64 `gorm:"autoIncrement;uniqueIndex" json:"-"`

	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"productName"`
	Type        TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"unitPrice"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(19,2);not null" json:"totalAmount"`
	Note        string          `gorm:"type:text" json:"note"`
}

// StockDelta is the signed quantity change this transaction applies to its
// product: +Quantity for a buy, -Quantity for a sell.
func (t *Transaction) StockDelta() int {
	if t.Type == TxBuy {
		return t.Quantity
	}
	return -t.Quantity
}

// ReversalDelta is the exact negation of StockDelta, applied when the
// transaction is deleted.
func (t *Transaction) ReversalDelta() int {
	return -t.StockDelta()
}

// ComputeTotal fixes TotalAmount as Quantity x UnitPrice. Called once at
// creation; the stored value is never recomputed afterwards.
func (t *Transaction) ComputeTotal() {
	t.TotalAmount = t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}
