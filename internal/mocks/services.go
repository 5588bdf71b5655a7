package mocks

import (
	"context"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/service"
	"github.com/stretchr/testify/mock"
)

type PurchaseService struct {
	mock.Mock
}

func (p *PurchaseService) Purchase(ctx context.Context, identity model.Identity, cmd service.PurchaseCommand) (service.PurchaseResult, error) {
	args := p.Called(ctx, identity, cmd)
	return args.Get(0).(service.PurchaseResult), args.Error(1)
}

type ListingService struct {
	mock.Mock
}

func (l *ListingService) GetListing(ctx context.Context, listingID string) (service.ListingView, error) {
	args := l.Called(ctx, listingID)
	return args.Get(0).(service.ListingView), args.Error(1)
}

type IdentityService struct {
	mock.Mock
}

func (i *IdentityService) Resolve(ctx context.Context, email string) (model.Identity, error) {
	args := i.Called(ctx, email)
	return args.Get(0).(model.Identity), args.Error(1)
}

type PurchaseEventQueueService struct {
	mock.Mock
}

func (q *PurchaseEventQueueService) FindEventsToQueue(ctx context.Context, limit int) ([]service.PurchaseCompletedMessage, error) {
	args := q.Called(ctx, limit)
	messages, _ := args.Get(0).([]service.PurchaseCompletedMessage)
	return messages, args.Error(1)
}

func (q *PurchaseEventQueueService) MarkEventAsQueued(ctx context.Context, eventID int64) error {
	args := q.Called(ctx, eventID)
	return args.Error(0)
}

type NotificationService struct {
	mock.Mock
}

func (n *NotificationService) NotifySeller(ctx context.Context, msg service.PurchaseCompletedMessage) error {
	args := n.Called(ctx, msg)
	return args.Error(0)
}
