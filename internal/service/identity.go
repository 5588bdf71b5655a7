package service

import (
	"context"
	"errors"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/constants"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/repository"
	"go.uber.org/zap"
)

type IdentityService interface {
	Resolve(ctx context.Context, email string) (model.Identity, error)
}

type identity struct {
	accounts repository.AccountRepository
	logger   *zap.Logger
}

func NewIdentityService(accountRepo repository.AccountRepository, logger *zap.Logger) IdentityService {
	return &identity{accounts: accountRepo, logger: logger}
}

// Resolve maps a verified token subject to the caller's identity.
func (i *identity) Resolve(ctx context.Context, email string) (model.Identity, error) {
	account, err := i.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			i.logger.Debug("Token subject has no account", zap.String("email", email))
			return model.Identity{}, newError(constants.ErrCodeUnauthorized)
		}

		i.logger.Error("Failed to load account for token subject", zap.Error(err))
		return model.Identity{}, wrapError(constants.ErrCodeInternalError, err)
	}

	if account.IsBanned {
		return model.Identity{}, newError(constants.ErrCodeAccountBanned)
	}

	return model.Identity{AccountID: account.ID, Email: account.Email, IsAdmin: account.IsAdmin}, nil
}
