package service

import (
	"context"
	"errors"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/config"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/constants"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/metrics"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	outcomeSuccess = "success"

	transactionRefPrefix = "tx_"
)

type PurchaseService interface {
	Purchase(ctx context.Context, identity model.Identity, cmd PurchaseCommand) (PurchaseResult, error)
}

type purchase struct {
	accounts  repository.AccountRepository
	listings  repository.ListingRepository
	events    repository.PurchaseEventRepository
	txManager repository.TxManager
	mode      string
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewPurchaseService(accountRepo repository.AccountRepository, listingRepo repository.ListingRepository,
	eventRepo repository.PurchaseEventRepository, txManager repository.TxManager, cfg *config.Config,
	metrics *metrics.Metrics, logger *zap.Logger) PurchaseService {
	return &purchase{
		accounts:  accountRepo,
		listings:  listingRepo,
		events:    eventRepo,
		txManager: txManager,
		mode:      cfg.Purchase.Mode,
		metrics:   metrics,
		logger:    logger,
	}
}

func (p *purchase) Purchase(ctx context.Context, identity model.Identity, cmd PurchaseCommand) (PurchaseResult, error) {
	start := time.Now()

	var (
		result PurchaseResult
		err    error
	)

	if p.mode == config.PurchaseModeSaga {
		result, err = p.purchaseSaga(ctx, identity, cmd)
	} else {
		result, err = p.purchaseTx(ctx, identity, cmd)
	}

	outcome := outcomeSuccess
	if err != nil {
		outcome = ErrorCode(err)
	}
	p.metrics.RecordPurchase(p.mode, outcome, time.Since(start))

	if err != nil {
		p.logger.Debug("Purchase rejected",
			zap.String("listingID", cmd.ListingID),
			zap.String("buyerID", identity.AccountID),
			zap.String("mode", p.mode),
			zap.String("code", outcome))
		return PurchaseResult{}, err
	}

	p.logger.Info("Purchase completed",
		zap.String("transactionRef", result.TransactionID),
		zap.String("listingID", result.ListingID),
		zap.String("buyerID", identity.AccountID),
		zap.Int("quantity", result.QuantityPurchased),
		zap.String("totalCost", result.TotalCost.StringFixed(2)),
		zap.Int("remainingStock", result.RemainingStock),
		zap.Bool("sold", result.Sold),
		zap.String("mode", p.mode))

	return result, nil
}

// checkRequest covers everything that can be decided without storage.
func checkRequest(identity model.Identity, cmd PurchaseCommand) error {
	if identity.IsAdmin {
		return newError(constants.ErrCodeAdminPurchaseForbidden)
	}

	if !model.IsValidID(cmd.ListingID) {
		return newError(constants.ErrCodeInvalidListingID)
	}

	if cmd.Quantity < 1 {
		return newError(constants.ErrCodeValidationFailed)
	}

	return nil
}

func checkListing(listing *model.Listing, identity model.Identity, quantity int) error {
	if listing.IsSold {
		return newError(constants.ErrCodeListingAlreadySold)
	}

	if listing.IsHidden {
		return newError(constants.ErrCodeListingNotAvailable)
	}

	if listing.SellerID == identity.AccountID {
		return newError(constants.ErrCodeOwnListingPurchase)
	}

	if listing.Stock < quantity {
		return newErrorf(constants.ErrCodeInsufficientStock, constants.ErrFmtInsufficientStock, listing.Stock)
	}

	return nil
}

func checkFunds(buyer *model.Account, cost decimal.Decimal) error {
	if buyer.Balance.LessThan(cost) {
		return newErrorf(constants.ErrCodeInsufficientFunds, constants.ErrFmtInsufficientFunds,
			buyer.Balance.StringFixed(2), cost.StringFixed(2))
	}

	return nil
}

func totalCost(listing *model.Listing, quantity int) decimal.Decimal {
	return listing.Price.Mul(decimal.NewFromInt(int64(quantity)))
}

func newTransactionRef() string {
	return transactionRefPrefix + uuid.NewString()
}

func mapListingLookupError(err error) error {
	if errors.Is(err, repository.ErrListingNotFound) {
		return newError(constants.ErrCodeListingNotFound)
	}

	return wrapError(constants.ErrCodeInternalError, err)
}

func mapAccountLookupError(notFoundCode string, err error) error {
	if errors.Is(err, repository.ErrAccountNotFound) {
		return newError(notFoundCode)
	}

	return wrapError(constants.ErrCodeInternalError, err)
}

type purchasePlan struct {
	ref      string
	listing  *model.Listing
	buyer    *model.Account
	seller   *model.Account
	quantity int
	cost     decimal.Decimal
}

func (pp purchasePlan) buyerNewBalance() decimal.Decimal {
	return pp.buyer.Balance.Sub(pp.cost)
}

func (pp purchasePlan) sellerNewBalance() decimal.Decimal {
	return pp.seller.Balance.Add(pp.cost)
}

func (pp purchasePlan) result(patch *model.ListingPatch) PurchaseResult {
	return PurchaseResult{
		ListingID:         pp.listing.ID,
		QuantityPurchased: pp.quantity,
		TotalCost:         pp.cost,
		RemainingStock:    patch.RemainingStock,
		Sold:              patch.Sold,
		BuyerNewBalance:   pp.buyerNewBalance(),
		SellerNewBalance:  pp.sellerNewBalance(),
		TransactionID:     pp.ref,
		ListingTitle:      pp.listing.Title,
		SellerName:        pp.seller.DisplayName(),
	}
}

func (pp purchasePlan) event() *model.PurchaseEvent {
	return &model.PurchaseEvent{
		TransactionRef: pp.ref,
		ListingID:      pp.listing.ID,
		ListingTitle:   pp.listing.Title,
		BuyerID:        pp.buyer.ID,
		SellerID:       pp.seller.ID,
		Quantity:       pp.quantity,
		TotalCost:      pp.cost,
	}
}
