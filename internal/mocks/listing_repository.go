package mocks

import (
	"context"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"github.com/stretchr/testify/mock"
)

type ListingRepository struct {
	mock.Mock
}

func (l *ListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	args := l.Called(ctx, id)
	listing, _ := args.Get(0).(*model.Listing)
	return listing, args.Error(1)
}

func (l *ListingRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Listing, error) {
	args := l.Called(ctx, id)
	listing, _ := args.Get(0).(*model.Listing)
	return listing, args.Error(1)
}

func (l *ListingRepository) UpdateStockAndSoldAndBuyers(ctx context.Context, id string, patch *model.ListingPatch) (int64, error) {
	args := l.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}
