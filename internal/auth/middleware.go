package auth

import (
	"strings"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/config"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/constants"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

type identityKey struct{}

type Middleware struct {
	identities service.IdentityService
	secret     []byte
	parser     *jwt.Parser
	logger     *zap.Logger
}

func NewMiddleware(cfg *config.Config, identities service.IdentityService, logger *zap.Logger) *Middleware {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Auth.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.Auth.Issuer))
	}

	return &Middleware{
		identities: identities,
		secret:     []byte(cfg.Auth.Secret),
		parser:     jwt.NewParser(options...),
		logger:     logger,
	}
}

// RequireIdentity verifies the bearer token and stores the caller's identity
// on the request. The token subject is the account email.
func (m *Middleware) RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return service.NewServiceError(constants.ErrCodeUnauthorized, nil)
		}

		claims := &jwt.RegisteredClaims{}
		_, err := m.parser.ParseWithClaims(strings.TrimPrefix(header, bearerPrefix), claims,
			func(*jwt.Token) (any, error) { return m.secret, nil })
		if err != nil || claims.Subject == "" {
			m.logger.Debug("Rejected bearer token", zap.Error(err), zap.String("path", c.Path()))
			return service.NewServiceError(constants.ErrCodeUnauthorized, nil)
		}

		identity, err := m.identities.Resolve(c.UserContext(), claims.Subject)
		if err != nil {
			return err
		}

		c.Locals(identityKey{}, identity)
		return c.Next()
	}
}

func IdentityFrom(c *fiber.Ctx) (model.Identity, bool) {
	identity, ok := c.Locals(identityKey{}).(model.Identity)
	return identity, ok
}
