package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const unknownDisplayName = "Unknown"

type Account struct {
	ID        string          `gorm:"column:id;primaryKey;type:char(36)"`
	Email     string          `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	FullName  string          `gorm:"column:full_name;type:varchar(255)"`
	UserName  string          `gorm:"column:user_name;type:varchar(100)"`
	Balance   decimal.Decimal `gorm:"column:balance;type:decimal(12,2);not null;default:0"`
	IsAdmin   bool            `gorm:"column:is_admin;not null;default:false"`
	IsBanned  bool            `gorm:"column:is_banned;not null;default:false"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// DisplayName prefers the full name, then the user name.
func (a Account) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}

	if a.UserName != "" {
		return a.UserName
	}

	return unknownDisplayName
}
