package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseEvent struct {
	ID             int64           `gorm:"primaryKey;autoIncrement;<-:create"`
	TransactionRef string          `gorm:"column:transaction_ref;type:varchar(64);uniqueIndex;not null;<-:create"`
	ListingID      string          `gorm:"column:listing_id;type:char(36);not null"`
	ListingTitle   string          `gorm:"column:listing_title;type:varchar(255)"`
	BuyerID        string          `gorm:"column:buyer_id;type:char(36);not null"`
	SellerID       string          `gorm:"column:seller_id;type:char(36);not null"`
	Quantity       int             `gorm:"column:quantity;not null"`
	TotalCost      decimal.Decimal `gorm:"column:total_cost;type:decimal(12,2);not null"`
	Published      bool            `gorm:"column:published;default:false;not null"`
	PublishedAt    *time.Time      `gorm:"column:published_at"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
}

func (PurchaseEvent) TableName() string {
	return "purchase_events"
}
