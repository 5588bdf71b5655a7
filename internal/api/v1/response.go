package v1

import (
	"encoding/json"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/service"
	"github.com/shopspring/decimal"
)

type PurchaseResponse struct {
	ListingID         string      `json:"listing_id"`
	QuantityPurchased int         `json:"quantity_purchased"`
	TotalCost         json.Number `json:"total_cost"`
	RemainingStock    int         `json:"remaining_stock"`
	BuyerNewBalance   json.Number `json:"buyer_new_balance"`
	SellerNewBalance  json.Number `json:"seller_new_balance"`
	TransactionID     string      `json:"transaction_id"`
	ListingTitle      string      `json:"listing_title"`
	SellerName        string      `json:"seller_name"`
}

type ListingResponse struct {
	ID          string      `json:"id"`
	SellerID    string      `json:"seller_id"`
	SellerName  string      `json:"seller_name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Stock       int         `json:"stock"`
	IsSold      bool        `json:"is_sold"`
	IsHidden    bool        `json:"is_hidden"`
	Buyers      []string    `json:"buyers"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func newPurchaseResponse(result service.PurchaseResult) PurchaseResponse {
	return PurchaseResponse{
		ListingID:         result.ListingID,
		QuantityPurchased: result.QuantityPurchased,
		TotalCost:         money(result.TotalCost),
		RemainingStock:    result.RemainingStock,
		BuyerNewBalance:   money(result.BuyerNewBalance),
		SellerNewBalance:  money(result.SellerNewBalance),
		TransactionID:     result.TransactionID,
		ListingTitle:      result.ListingTitle,
		SellerName:        result.SellerName,
	}
}

func newListingResponse(view service.ListingView) ListingResponse {
	buyers := view.BuyerIDs
	if buyers == nil {
		buyers = []string{}
	}

	return ListingResponse{
		ID:          view.ID,
		SellerID:    view.SellerID,
		SellerName:  view.SellerName,
		Title:       view.Title,
		Description: view.Description,
		Price:       money(view.Price),
		Stock:       view.Stock,
		IsSold:      view.IsSold,
		IsHidden:    view.IsHidden,
		Buyers:      buyers,
		CreatedAt:   view.CreatedAt,
		UpdatedAt:   view.UpdatedAt,
	}
}

// money renders an amount as a JSON number with two decimals.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
