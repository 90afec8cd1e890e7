package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/AksSC/finance/models"
)

// GormStore implements Store on top of Postgres via GORM.
type GormStore struct {
	db *gorm.DB
}

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Stock{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// NewGormStore wraps an existing connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) CreateUser(ctx context.Context, username, hash string) (*models.User, error) {
	user := models.User{
		Username: username,
		Hash:     hash,
		Cash:     models.StartingCash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("store: create user: %w", err)
	}
	return &user, nil
}

func (s *GormStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: user %d: %w", id, err)
	}
	return &user, nil
}

func (s *GormStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: user %q: %w", username, err)
	}
	return &user, nil
}

func (s *GormStore) UpdateUserHash(ctx context.Context, id uint, hash string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("hash", hash)
	if res.Error != nil {
		return fmt.Errorf("store: update hash: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store: update hash: user %d not found", id)
	}
	return nil
}

func (s *GormStore) Holdings(ctx context.Context, userID uint) ([]models.Holding, error) {
	var holdings []models.Holding
	err := s.db.WithContext(ctx).
		Model(&models.Stock{}).
		Select("symbol, SUM(shares) AS shares").
		Where("user_id = ?", userID).
		Group("symbol").
		Having("SUM(shares) > 0").
		Order("symbol").
		Scan(&holdings).Error
	if err != nil {
		return nil, fmt.Errorf("store: holdings: %w", err)
	}
	return holdings, nil
}

func (s *GormStore) Transactions(ctx context.Context, userID uint) ([]models.Stock, error) {
	var rows []models.Stock
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: transactions: %w", err)
	}
	return rows, nil
}

// Buy locks the user row so the cash check and the debit are one atomic
// step even under concurrent requests.
func (s *GormStore) Buy(ctx context.Context, userID uint, symbol string, shares int, price decimal.Decimal) error {
	cost := price.Mul(decimal.NewFromInt(int64(shares)))
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			return fmt.Errorf("store: buy: load user %d: %w", userID, err)
		}
		if user.Cash.LessThan(cost) {
			return ErrInsufficientCash
		}
		if err := tx.Model(&user).Update("cash", user.Cash.Sub(cost)).Error; err != nil {
			return fmt.Errorf("store: buy: debit cash: %w", err)
		}
		row := models.Stock{
			UserID:    userID,
			Symbol:    strings.ToUpper(symbol),
			Shares:    shares,
			Price:     price,
			Operation: models.OpBuy,
			Timestamp: time.Now(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("store: buy: insert: %w", err)
		}
		return nil
	})
}

// Sell locks the user row, re-checks holdings inside the transaction and
// only then appends the negative row and credits the proceeds.
func (s *GormStore) Sell(ctx context.Context, userID uint, symbol string, shares int, price decimal.Decimal) error {
	symbol = strings.ToUpper(symbol)
	proceeds := price.Mul(decimal.NewFromInt(int64(shares)))
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			return fmt.Errorf("store: sell: load user %d: %w", userID, err)
		}
		var held int
		err := tx.Model(&models.Stock{}).
			Select("COALESCE(SUM(shares), 0)").
			Where("user_id = ? AND symbol = ?", userID, symbol).
			Scan(&held).Error
		if err != nil {
			return fmt.Errorf("store: sell: sum holdings: %w", err)
		}
		if held < shares {
			return ErrInsufficientShares
		}
		row := models.Stock{
			UserID:    userID,
			Symbol:    symbol,
			Shares:    -shares,
			Price:     price,
			Operation: models.OpSell,
			Timestamp: time.Now(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("store: sell: insert: %w", err)
		}
		if err := tx.Model(&user).Update("cash", user.Cash.Add(proceeds)).Error; err != nil {
			return fmt.Errorf("store: sell: credit cash: %w", err)
		}
		return nil
	})
}
