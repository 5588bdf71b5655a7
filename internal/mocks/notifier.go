package mocks

import (
	"context"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/notifier"
	"github.com/stretchr/testify/mock"
)

type Notifier struct {
	mock.Mock
}

func (n *Notifier) Send(ctx context.Context, request notifier.NotificationRequest) (notifier.Response, error) {
	args := n.Called(ctx, request)
	return args.Get(0).(notifier.Response), args.Error(1)
}
