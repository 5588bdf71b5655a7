package mocks

import (
	"context"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type AccountRepository struct {
	mock.Mock
}

func (a *AccountRepository) FindByID(ctx context.Context, id string) (*model.Account, error) {
	args := a.Called(ctx, id)
	account, _ := args.Get(0).(*model.Account)
	return account, args.Error(1)
}

func (a *AccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := a.Called(ctx, email)
	account, _ := args.Get(0).(*model.Account)
	return account, args.Error(1)
}

func (a *AccountRepository) FindByIDsForUpdate(ctx context.Context, ids []string) ([]model.Account, error) {
	args := a.Called(ctx, ids)
	accounts, _ := args.Get(0).([]model.Account)
	return accounts, args.Error(1)
}

func (a *AccountRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) (int64, error) {
	args := a.Called(ctx, id, balance)
	return args.Get(0).(int64), args.Error(1)
}
