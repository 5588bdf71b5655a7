package mocks

import (
	"context"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"github.com/stretchr/testify/mock"
)

type PurchaseEventRepository struct {
	mock.Mock
}

func (p *PurchaseEventRepository) Create(ctx context.Context, event *model.PurchaseEvent) error {
	args := p.Called(ctx, event)
	return args.Error(0)
}

func (p *PurchaseEventRepository) FindUnpublished(ctx context.Context, limit int) ([]model.PurchaseEvent, error) {
	args := p.Called(ctx, limit)
	events, _ := args.Get(0).([]model.PurchaseEvent)
	return events, args.Error(1)
}

func (p *PurchaseEventRepository) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	args := p.Called(ctx, id, publishedAt)
	return args.Error(0)
}
