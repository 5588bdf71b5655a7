package service

type PurchaseCommand struct {
	ListingID string
	Quantity  int
}

// PurchaseCompletedMessage is the broker payload relayed from the purchase
// outbox.
type PurchaseCompletedMessage struct {
	EventID        int64  `json:"event_id"`
	TransactionRef string `json:"transaction_ref"`
	ListingID      string `json:"listing_id"`
	ListingTitle   string `json:"listing_title"`
	BuyerID        string `json:"buyer_id"`
	SellerID       string `json:"seller_id"`
	Quantity       int    `json:"quantity"`
	TotalCost      string `json:"total_cost"`
}
