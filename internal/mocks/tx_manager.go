package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type txKey struct{}

type TxManager struct {
	mock.Mock
}

// WithTx runs fn with a marked context unless the expectation returns an
// error, in which case fn is never called.
func (t *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := t.Called(ctx, fn)

	if args.Error(0) != nil {
		return args.Error(0)
	}

	txCtx := context.WithValue(ctx, txKey{}, "mock_tx")
	return fn(txCtx)
}

// InTx matches contexts created by TxManager.WithTx.
func InTx() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Value(txKey{}) != nil
	})
}
