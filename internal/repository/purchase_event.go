package repository

import (
	"context"
	"errors"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"gorm.io/gorm"
)

var ErrPurchaseEventDuplicate = errors.New("PURCHASE_EVENT_DUPLICATE")

type PurchaseEventRepository interface {
	Create(ctx context.Context, event *model.PurchaseEvent) error
	FindUnpublished(ctx context.Context, limit int) ([]model.PurchaseEvent, error)
	MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error
}

type PurchaseEvent struct {
	db *gorm.DB
}

func NewPurchaseEventRepository(db *gorm.DB) PurchaseEventRepository {
	return &PurchaseEvent{db: db}
}

func (p *PurchaseEvent) Create(ctx context.Context, event *model.PurchaseEvent) error {
	err := translateError(GetTx(ctx, p.db).Create(event).Error)
	if errors.Is(err, ErrDuplicate) {
		return ErrPurchaseEventDuplicate
	}

	return err
}

func (p *PurchaseEvent) FindUnpublished(ctx context.Context, limit int) ([]model.PurchaseEvent, error) {
	var events []model.PurchaseEvent

	err := GetTx(ctx, p.db).
		Where("published = ?", false).
		Order("id ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, translateError(err)
	}

	return events, nil
}

func (p *PurchaseEvent) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	result := GetTx(ctx, p.db).Model(&model.PurchaseEvent{}).
		Where("id = ? AND published = ?", id, false).
		Updates(map[string]interface{}{"published": true, "published_at": publishedAt})
	if result.Error != nil {
		return translateError(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
