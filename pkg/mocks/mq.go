package mocks

import (
	"context"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/mq"
	"github.com/stretchr/testify/mock"
)

type Publisher struct {
	mock.Mock
}

func (_m *Publisher) Publish(ctx context.Context, msg mq.Message) error {
	ret := _m.Called(ctx, msg)
	return ret.Error(0)
}

type Consumer struct {
	mock.Mock
}

func (_m *Consumer) Consume(ctx context.Context, prefetch int, queue string, handler mq.Handle) error {
	ret := _m.Called(ctx, prefetch, queue, handler)
	return ret.Error(0)
}
