package service

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseResult struct {
	ListingID         string
	QuantityPurchased int
	TotalCost         decimal.Decimal
	RemainingStock    int
	Sold              bool
	BuyerNewBalance   decimal.Decimal
	SellerNewBalance  decimal.Decimal
	TransactionID     string
	ListingTitle      string
	SellerName        string
}

type ListingView struct {
	ID          string
	SellerID    string
	SellerName  string
	Title       string
	Description string
	Price       decimal.Decimal
	Stock       int
	IsSold      bool
	IsHidden    bool
	BuyerIDs    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
