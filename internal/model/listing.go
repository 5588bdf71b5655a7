package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Listing struct {
	ID          string          `gorm:"column:id;primaryKey;type:char(36)"`
	SellerID    string          `gorm:"column:seller_id;type:char(36);index;not null"`
	Title       string          `gorm:"column:title;type:varchar(255);not null"`
	Description string          `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null"`
	Stock       int             `gorm:"column:stock;not null;default:1"`
	IsSold      bool            `gorm:"column:is_sold;not null;default:false"`
	IsHidden    bool            `gorm:"column:is_hidden;not null;default:false"`
	IsReported  bool            `gorm:"column:is_reported;not null;default:false"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`

	Buyers []ListingBuyer `gorm:"foreignKey:ListingID"`
}

func (Listing) TableName() string {
	return "listings"
}

func (l Listing) BuyerIDs() []string {
	ids := make([]string, 0, len(l.Buyers))
	for _, buyer := range l.Buyers {
		ids = append(ids, buyer.AccountID)
	}

	return ids
}

// ListingBuyer is one member of a listing's buyer set.
type ListingBuyer struct {
	ListingID string    `gorm:"column:listing_id;primaryKey;type:char(36)"`
	AccountID string    `gorm:"column:account_id;primaryKey;type:char(36)"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (ListingBuyer) TableName() string {
	return "listing_buyers"
}

// ListingPatch describes the stock change applied by a purchase. RemainingStock
// and Sold are filled in by the store once the write is applied.
type ListingPatch struct {
	Quantity int
	BuyerID  string

	RemainingStock int
	Sold           bool
}
