package service

import (
	"context"
	"errors"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/constants"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/repository"
	"go.uber.org/zap"
)

type ListingService interface {
	GetListing(ctx context.Context, listingID string) (ListingView, error)
}

type listing struct {
	listings repository.ListingRepository
	accounts repository.AccountRepository
	logger   *zap.Logger
}

func NewListingService(listingRepo repository.ListingRepository, accountRepo repository.AccountRepository,
	logger *zap.Logger) ListingService {
	return &listing{listings: listingRepo, accounts: accountRepo, logger: logger}
}

func (l *listing) GetListing(ctx context.Context, listingID string) (ListingView, error) {
	if !model.IsValidID(listingID) {
		return ListingView{}, newError(constants.ErrCodeInvalidListingID)
	}

	found, err := l.listings.FindByID(ctx, listingID)
	if err != nil {
		return ListingView{}, mapListingLookupError(err)
	}

	sellerName := model.Account{}.DisplayName()
	seller, err := l.accounts.FindByID(ctx, found.SellerID)
	switch {
	case err == nil:
		sellerName = seller.DisplayName()
	case !errors.Is(err, repository.ErrAccountNotFound):
		l.logger.Warn("Failed to load listing seller",
			zap.String("listingID", listingID),
			zap.String("sellerID", found.SellerID),
			zap.Error(err))
	}

	return ListingView{
		ID:          found.ID,
		SellerID:    found.SellerID,
		SellerName:  sellerName,
		Title:       found.Title,
		Description: found.Description,
		Price:       found.Price,
		Stock:       found.Stock,
		IsSold:      found.IsSold,
		IsHidden:    found.IsHidden,
		BuyerIDs:    found.BuyerIDs(),
		CreatedAt:   found.CreatedAt,
		UpdatedAt:   found.UpdatedAt,
	}, nil
}
