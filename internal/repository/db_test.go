package repository

import (
	"testing"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database with the marketplace schema.
// A single connection keeps every statement on the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Account{}, &model.Listing{}, &model.ListingBuyer{}, &model.PurchaseEvent{}))

	return db
}

func seedAccount(t *testing.T, db *gorm.DB, email, balance string) model.Account {
	t.Helper()

	account := model.Account{
		ID:      uuid.NewString(),
		Email:   email,
		Balance: decimal.RequireFromString(balance),
	}
	require.NoError(t, db.Create(&account).Error)

	return account
}

func seedListing(t *testing.T, db *gorm.DB, sellerID string, stock int) model.Listing {
	t.Helper()

	listing := model.Listing{
		ID:       uuid.NewString(),
		SellerID: sellerID,
		Title:    "Desk lamp",
		Price:    decimal.RequireFromString("25.00"),
		Stock:    stock,
	}
	require.NoError(t, db.Create(&listing).Error)

	return listing
}
