package service

import (
	"context"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/constants"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"go.uber.org/zap"
)

// purchaseTx evaluates the preconditions against locked rows and applies all
// writes in one transaction. Any failure rolls everything back.
func (p *purchase) purchaseTx(ctx context.Context, identity model.Identity, cmd PurchaseCommand) (PurchaseResult, error) {
	if err := checkRequest(identity, cmd); err != nil {
		return PurchaseResult{}, err
	}

	var result PurchaseResult
	err := p.txManager.WithTx(ctx, func(txCtx context.Context) error {
		listing, err := p.listings.FindByIDForUpdate(txCtx, cmd.ListingID)
		if err != nil {
			return mapListingLookupError(err)
		}

		if err := checkListing(listing, identity, cmd.Quantity); err != nil {
			return err
		}

		accounts, err := p.accounts.FindByIDsForUpdate(txCtx, []string{identity.AccountID, listing.SellerID})
		if err != nil {
			return wrapError(constants.ErrCodeInternalError, err)
		}

		buyer, seller := pickAccounts(accounts, identity.AccountID, listing.SellerID)
		if buyer == nil {
			return newError(constants.ErrCodeBuyerNotFound)
		}

		cost := totalCost(listing, cmd.Quantity)
		if err := checkFunds(buyer, cost); err != nil {
			return err
		}

		if seller == nil {
			return newError(constants.ErrCodeSellerNotFound)
		}

		plan := purchasePlan{
			ref:      newTransactionRef(),
			listing:  listing,
			buyer:    buyer,
			seller:   seller,
			quantity: cmd.Quantity,
			cost:     cost,
		}

		patch, err := p.applyTx(txCtx, plan)
		if err != nil {
			return err
		}

		result = plan.result(patch)
		return nil
	})

	if err != nil {
		return PurchaseResult{}, asServiceError(err)
	}

	p.metrics.RecordPurchaseEvent("recorded")

	return result, nil
}

func (p *purchase) applyTx(ctx context.Context, plan purchasePlan) (*model.ListingPatch, error) {
	n, err := p.accounts.UpdateBalance(ctx, plan.buyer.ID, plan.buyerNewBalance())
	if err != nil || n == 0 {
		p.logger.Error("Buyer debit failed, rolling back",
			zap.String("transactionRef", plan.ref),
			zap.String("buyerID", plan.buyer.ID),
			zap.Error(err))
		return nil, newError(constants.ErrCodeBuyerUpdateFailed)
	}

	n, err = p.accounts.UpdateBalance(ctx, plan.seller.ID, plan.sellerNewBalance())
	if err != nil || n == 0 {
		p.logger.Error("Seller credit failed, rolling back",
			zap.String("transactionRef", plan.ref),
			zap.String("sellerID", plan.seller.ID),
			zap.Error(err))
		return nil, newError(constants.ErrCodeSellerUpdateFailed)
	}

	patch := &model.ListingPatch{Quantity: plan.quantity, BuyerID: plan.buyer.ID}
	n, err = p.listings.UpdateStockAndSoldAndBuyers(ctx, plan.listing.ID, patch)
	if err != nil || n == 0 {
		p.logger.Error("Listing update failed, rolling back",
			zap.String("transactionRef", plan.ref),
			zap.String("listingID", plan.listing.ID),
			zap.Error(err))
		return nil, newError(constants.ErrCodeListingUpdateFailed)
	}

	if err := p.events.Create(ctx, plan.event()); err != nil {
		p.logger.Error("Failed to record purchase event, rolling back",
			zap.String("transactionRef", plan.ref),
			zap.Error(err))
		return nil, wrapError(constants.ErrCodeInternalError, err)
	}

	return patch, nil
}

func pickAccounts(accounts []model.Account, buyerID, sellerID string) (buyer, seller *model.Account) {
	for i := range accounts {
		switch accounts[i].ID {
		case buyerID:
			buyer = &accounts[i]
		case sellerID:
			seller = &accounts[i]
		}
	}

	return buyer, seller
}
