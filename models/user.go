package models

import "github.com/shopspring/decimal"

// User is an account holder. Cash is the simulated balance every new
// account starts with; it only changes through buys and sells.
type User struct {
	ID       uint            `gorm:"primaryKey"`
	Username string          `gorm:"uniqueIndex;not null"`
	Hash     string          `gorm:"not null"`
	Cash     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// StartingCash is credited to every newly registered user.
var StartingCash = decimal.NewFromInt(10000)
