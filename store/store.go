package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/AksSC/finance/models"
)

var (
	// ErrInsufficientCash is returned by Buy when the order costs more
	// than the user's balance.
	ErrInsufficientCash = errors.New("store: insufficient cash")
	// ErrInsufficientShares is returned by Sell when the user holds
	// fewer shares of the symbol than requested.
	ErrInsufficientShares = errors.New("store: insufficient shares")
)

// Store is the persistence boundary the handlers talk to. User lookups
// return (nil, nil) when no row matches.
type Store interface {
	CreateUser(ctx context.Context, username, hash string) (*models.User, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUserHash(ctx context.Context, id uint, hash string) error

	// Holdings returns net positions with a positive share count,
	// ordered by symbol.
	Holdings(ctx context.Context, userID uint) ([]models.Holding, error)
	// Transactions returns every trade of the user in chronological order.
	Transactions(ctx context.Context, userID uint) ([]models.Stock, error)

	// Buy debits shares*price from the user's cash and appends a buy row,
	// atomically. Sell checks current holdings, appends a negative row and
	// credits the proceeds, atomically.
	Buy(ctx context.Context, userID uint, symbol string, shares int, price decimal.Decimal) error
	Sell(ctx context.Context, userID uint, symbol string, shares int, price decimal.Decimal) error
}
