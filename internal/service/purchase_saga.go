package service

import (
	"context"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/constants"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	stepSellerCredit  = "seller_credit"
	stepListingUpdate = "listing_update"

	roleBuyer  = "buyer"
	roleSeller = "seller"
)

// balanceRestore puts an account back to the balance it had before the
// purchase started.
type balanceRestore struct {
	role      string
	accountID string
	balance   decimal.Decimal
}

func (p *purchase) purchaseSaga(ctx context.Context, identity model.Identity, cmd PurchaseCommand) (PurchaseResult, error) {
	if err := checkRequest(identity, cmd); err != nil {
		return PurchaseResult{}, err
	}

	listing, err := p.listings.FindByID(ctx, cmd.ListingID)
	if err != nil {
		return PurchaseResult{}, mapListingLookupError(err)
	}

	if err := checkListing(listing, identity, cmd.Quantity); err != nil {
		return PurchaseResult{}, err
	}

	buyer, err := p.accounts.FindByID(ctx, identity.AccountID)
	if err != nil {
		return PurchaseResult{}, mapAccountLookupError(constants.ErrCodeBuyerNotFound, err)
	}

	cost := totalCost(listing, cmd.Quantity)
	if err := checkFunds(buyer, cost); err != nil {
		return PurchaseResult{}, err
	}

	seller, err := p.accounts.FindByID(ctx, listing.SellerID)
	if err != nil {
		return PurchaseResult{}, mapAccountLookupError(constants.ErrCodeSellerNotFound, err)
	}

	plan := purchasePlan{
		ref:      newTransactionRef(),
		listing:  listing,
		buyer:    buyer,
		seller:   seller,
		quantity: cmd.Quantity,
		cost:     cost,
	}

	// The writes must run to completion or be compensated even if the caller
	// goes away.
	return p.executeSaga(context.WithoutCancel(ctx), plan)
}

func (p *purchase) executeSaga(ctx context.Context, plan purchasePlan) (PurchaseResult, error) {
	restoreBuyer := balanceRestore{role: roleBuyer, accountID: plan.buyer.ID, balance: plan.buyer.Balance}
	restoreSeller := balanceRestore{role: roleSeller, accountID: plan.seller.ID, balance: plan.seller.Balance}

	n, err := p.accounts.UpdateBalance(ctx, plan.buyer.ID, plan.buyerNewBalance())
	if err != nil || n == 0 {
		p.logger.Error("Buyer debit failed",
			zap.String("transactionRef", plan.ref),
			zap.String("buyerID", plan.buyer.ID),
			zap.Int64("modified", n),
			zap.Error(err))
		return PurchaseResult{}, newError(constants.ErrCodeBuyerUpdateFailed)
	}

	n, err = p.accounts.UpdateBalance(ctx, plan.seller.ID, plan.sellerNewBalance())
	if err != nil || n == 0 {
		p.logger.Error("Seller credit failed, restoring buyer balance",
			zap.String("transactionRef", plan.ref),
			zap.String("sellerID", plan.seller.ID),
			zap.Int64("modified", n),
			zap.Error(err))
		p.compensate(ctx, plan.ref, stepSellerCredit, restoreBuyer)
		return PurchaseResult{}, newError(constants.ErrCodeSellerUpdateFailed)
	}

	patch := &model.ListingPatch{Quantity: plan.quantity, BuyerID: plan.buyer.ID}
	n, err = p.listings.UpdateStockAndSoldAndBuyers(ctx, plan.listing.ID, patch)
	if err != nil || n == 0 {
		p.logger.Error("Listing update failed, restoring balances",
			zap.String("transactionRef", plan.ref),
			zap.String("listingID", plan.listing.ID),
			zap.Int64("modified", n),
			zap.Error(err))
		p.compensate(ctx, plan.ref, stepListingUpdate, restoreSeller, restoreBuyer)

		if err == nil {
			if conflict := p.recheckListing(ctx, plan.listing.ID, plan.quantity); conflict != nil {
				return PurchaseResult{}, conflict
			}
		}

		return PurchaseResult{}, newError(constants.ErrCodeListingUpdateFailed)
	}

	p.recordEvent(ctx, plan)

	return plan.result(patch), nil
}

// compensate applies the restores in the order given. Each is attempted
// once; a restore that cannot be applied leaves the books out of balance and
// is only reported.
func (p *purchase) compensate(ctx context.Context, ref string, failedStep string, restores ...balanceRestore) {
	p.metrics.RecordCompensation(failedStep)

	for _, restore := range restores {
		n, err := p.accounts.UpdateBalance(ctx, restore.accountID, restore.balance)
		if err == nil && n > 0 {
			p.logger.Warn("Balance restored after failed purchase step",
				zap.String("transactionRef", ref),
				zap.String("failedStep", failedStep),
				zap.String("accountRole", restore.role),
				zap.String("accountID", restore.accountID))
			continue
		}

		p.metrics.RecordCompensationFailure(restore.role)
		p.logger.Error("CRITICAL: Balance restore failed - manual intervention required",
			zap.String("transactionRef", ref),
			zap.String("failedStep", failedStep),
			zap.String("accountRole", restore.role),
			zap.String("accountID", restore.accountID),
			zap.String("expectedBalance", restore.balance.StringFixed(2)),
			zap.Int64("modified", n),
			zap.Error(err))
	}
}

// recheckListing explains a conditional stock write that matched nothing:
// another purchase took the stock between the read and the write.
func (p *purchase) recheckListing(ctx context.Context, listingID string, quantity int) error {
	current, err := p.listings.FindByID(ctx, listingID)
	if err != nil {
		p.logger.Warn("Failed to re-read listing after rejected stock update",
			zap.String("listingID", listingID),
			zap.Error(err))
		return nil
	}

	if current.IsSold {
		return newError(constants.ErrCodeListingAlreadySold)
	}

	if current.Stock < quantity {
		return newErrorf(constants.ErrCodeInsufficientStock, constants.ErrFmtInsufficientStock, current.Stock)
	}

	return nil
}

// recordEvent writes the outbox row after a committed saga. The purchase has
// already happened, so a failure here only costs the notification.
func (p *purchase) recordEvent(ctx context.Context, plan purchasePlan) {
	if err := p.events.Create(ctx, plan.event()); err != nil {
		p.metrics.RecordPurchaseEvent("failed")
		p.logger.Warn("Failed to record purchase event",
			zap.String("transactionRef", plan.ref),
			zap.Error(err))
		return
	}

	p.metrics.RecordPurchaseEvent("recorded")
}
