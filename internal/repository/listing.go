package repository

import (
	"context"
	"errors"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrListingNotFound = errors.New("LISTING_NOT_FOUND")

type ListingRepository interface {
	FindByID(ctx context.Context, id string) (*model.Listing, error)
	FindByIDForUpdate(ctx context.Context, id string) (*model.Listing, error)
	UpdateStockAndSoldAndBuyers(ctx context.Context, id string, patch *model.ListingPatch) (int64, error)
}

type Listing struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &Listing{db: db}
}

func (l *Listing) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	return l.find(GetTx(ctx, l.db), id)
}

func (l *Listing) FindByIDForUpdate(ctx context.Context, id string) (*model.Listing, error) {
	return l.find(GetTx(ctx, l.db).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (l *Listing) find(db *gorm.DB, id string) (*model.Listing, error) {
	var listing model.Listing

	err := db.Preload("Buyers").Where("id = ?", id).Take(&listing).Error
	if err == nil {
		return &listing, nil
	}

	if isNotFound(err) {
		return nil, ErrListingNotFound
	}

	return nil, translateError(err)
}

// UpdateStockAndSoldAndBuyers decrements stock only while enough remains and
// the listing is unsold, flips the sold flag at zero and adds the buyer to the
// buyer set. A zero count means the conditional decrement matched nothing and
// no change was made.
func (l *Listing) UpdateStockAndSoldAndBuyers(ctx context.Context, id string, patch *model.ListingPatch) (int64, error) {
	var affected int64

	err := GetTx(ctx, l.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Listing{}).
			Where("id = ? AND stock >= ? AND is_sold = ?", id, patch.Quantity, false).
			Update("stock", gorm.Expr("stock - ?", patch.Quantity))
		if result.Error != nil {
			return translateError(result.Error)
		}

		if result.RowsAffected == 0 {
			return ErrNoRowsAffected
		}
		affected = result.RowsAffected

		err := tx.Model(&model.Listing{}).
			Where("id = ? AND stock = 0", id).
			Update("is_sold", true).Error
		if err != nil {
			return translateError(err)
		}

		buyer := model.ListingBuyer{ListingID: id, AccountID: patch.BuyerID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&buyer).Error; err != nil {
			return translateError(err)
		}

		var current model.Listing
		if err := tx.Select("stock", "is_sold").Where("id = ?", id).Take(&current).Error; err != nil {
			return translateError(err)
		}

		patch.RemainingStock = current.Stock
		patch.Sold = current.IsSold

		return nil
	})

	if errors.Is(err, ErrNoRowsAffected) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	return affected, nil
}
