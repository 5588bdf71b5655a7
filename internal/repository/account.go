package repository

import (
	"context"
	"errors"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAccountNotFound = errors.New("ACCOUNT_NOT_FOUND")

type AccountRepository interface {
	FindByID(ctx context.Context, id string) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByIDsForUpdate(ctx context.Context, ids []string) ([]model.Account, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) (int64, error)
}

type Account struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &Account{db: db}
}

func (a *Account) FindByID(ctx context.Context, id string) (*model.Account, error) {
	return a.findOne(ctx, "id = ?", id)
}

func (a *Account) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	return a.findOne(ctx, "email = ?", email)
}

func (a *Account) findOne(ctx context.Context, query string, arg string) (*model.Account, error) {
	var account model.Account

	err := GetTx(ctx, a.db).Where(query, arg).Take(&account).Error
	if err == nil {
		return &account, nil
	}

	if isNotFound(err) {
		return nil, ErrAccountNotFound
	}

	return nil, translateError(err)
}

// FindByIDsForUpdate locks the accounts in ascending id order. It must run
// inside a transaction; missing ids are simply absent from the result.
func (a *Account) FindByIDsForUpdate(ctx context.Context, ids []string) ([]model.Account, error) {
	var accounts []model.Account

	err := GetTx(ctx, a.db).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id IN ?", ids).
		Order("id").
		Find(&accounts).Error
	if err != nil {
		return nil, translateError(err)
	}

	return accounts, nil
}

func (a *Account) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) (int64, error) {
	result := GetTx(ctx, a.db).Model(&model.Account{}).
		Where("id = ?", id).
		Update("balance", balance)
	if result.Error != nil {
		return 0, translateError(result.Error)
	}

	return result.RowsAffected, nil
}
