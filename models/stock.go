package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OpBuy  = "buy"
	OpSell = "sell"
)

// Stock is one executed trade. Rows are append-only: a sell is recorded
// with negative shares, and current holdings are the signed sum per
// (user, symbol).
type Stock struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"index;not null"`
	Symbol    string          `gorm:"index;not null"`
	Shares    int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Operation string          `gorm:"not null"`
	Timestamp time.Time       `gorm:"default:CURRENT_TIMESTAMP"`
}

// Holding is the derived net position a user has in one symbol.
type Holding struct {
	Symbol string
	Shares int
}
