package api_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/api"
	v1 "github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/api/v1"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/api/validator"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/auth"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/config"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/constants"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/metrics"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/mocks"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/service"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	secret     = "route-secret"
	listingID  = "5f0c7a52-3c5e-4c1e-9d8e-0a4b8f1e2d31"
	buyerEmail = "buyer@campus.edu"
)

var buyer = model.Identity{AccountID: "8d3c1f6a-1b2e-4c5d-8e7f-9a0b1c2d3e4f", Email: buyerEmail}

type checker struct{ err error }

func (c checker) HealthCheck() error { return c.err }

type fixture struct {
	app        *fiber.App
	metrics    *metrics.Metrics
	purchase   *mocks.PurchaseService
	listings   *mocks.ListingService
	identities *mocks.IdentityService
}

func newFixture(t *testing.T, health error) *fixture {
	t.Helper()

	logger := zap.NewNop()
	cfg := &config.Config{
		API:  config.API{ReadTimeout: time.Second, WriteTimeout: time.Second},
		Auth: config.Auth{Secret: secret},
	}

	f := &fixture{
		metrics:    metrics.NewMetrics(prometheus.NewRegistry()),
		purchase:   &mocks.PurchaseService{},
		listings:   &mocks.ListingService{},
		identities: &mocks.IdentityService{},
	}
	f.identities.On("Resolve", mock.Anything, buyerEmail).Return(buyer, nil).Maybe()

	handler := v1.NewHandler(logger, f.purchase, f.listings, validator.NewXValidator(playground.New(), f.metrics))
	f.app = api.NewApp(cfg, f.metrics, logger, checker{err: health})
	api.SetupRoutes(f.app, handler, auth.NewMiddleware(cfg, f.identities, logger).RequireIdentity())

	return f
}

func token(t *testing.T) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   buyerEmail,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func (f *fixture) do(t *testing.T, req *http.Request) (int, string) {
	t.Helper()

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func purchaseRequest(t *testing.T, body string, authorized bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/listings/"+listingID+"/purchase", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "Bearer "+token(t))
	}
	return req
}

func TestPing(t *testing.T) {
	f := newFixture(t, nil)

	status, body := f.do(t, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, 200, status)
	assert.Equal(t, "pong", body)
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		status, body := newFixture(t, nil).do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, 200, status)
		assert.Contains(t, body, `"status":"healthy"`)
	})

	t.Run("database down", func(t *testing.T) {
		status, body := newFixture(t, errors.New("ping failed")).do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, 503, status)
		assert.Contains(t, body, `"status":"unhealthy"`)
	})
}

func TestGetListing(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t, nil)
		f.listings.On("GetListing", mock.Anything, listingID).Return(service.ListingView{
			ID:         listingID,
			SellerID:   "seller-1",
			SellerName: "Dana",
			Title:      "Desk lamp",
			Price:      decimal.RequireFromString("12.5"),
			Stock:      3,
		}, nil)

		status, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/listings/"+listingID, nil))

		assert.Equal(t, 200, status)
		assert.Contains(t, body, `"success":true`)
		assert.Contains(t, body, `"price":12.50`)
		assert.Contains(t, body, `"seller_name":"Dana"`)
		assert.Contains(t, body, `"buyers":[]`)
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newFixture(t, nil)
		f.listings.On("GetListing", mock.Anything, "nope").
			Return(service.ListingView{}, service.NewServiceError(constants.ErrCodeInvalidListingID, nil))

		status, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/listings/nope", nil))

		assert.Equal(t, 400, status)
		assert.Contains(t, body, `"code":"INVALID_LISTING_ID"`)
		assert.Contains(t, body, `"message":"Invalid listing ID"`)
	})
}

func TestPurchase(t *testing.T) {
	t.Run("completes", func(t *testing.T) {
		f := newFixture(t, nil)
		f.purchase.On("Purchase", mock.Anything, buyer, service.PurchaseCommand{ListingID: listingID, Quantity: 2}).
			Return(service.PurchaseResult{
				ListingID:         listingID,
				QuantityPurchased: 2,
				TotalCost:         decimal.RequireFromString("50"),
				RemainingStock:    3,
				BuyerNewBalance:   decimal.RequireFromString("50"),
				SellerNewBalance:  decimal.RequireFromString("60"),
				TransactionID:     "tx_abc",
				ListingTitle:      "Desk lamp",
				SellerName:        "Dana",
			}, nil)

		status, body := f.do(t, purchaseRequest(t, `{"quantity":2}`, true))

		assert.Equal(t, 200, status)
		assert.Contains(t, body, `"message":"Purchase completed successfully!"`)
		assert.Contains(t, body, `"total_cost":50.00`)
		assert.Contains(t, body, `"buyer_new_balance":50.00`)
		assert.Contains(t, body, `"seller_new_balance":60.00`)
		assert.Contains(t, body, `"remaining_stock":3`)
		assert.Contains(t, body, `"transaction_id":"tx_abc"`)
		f.purchase.AssertExpectations(t)

		path := "/api/listings/:listingId/purchase"
		assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.HTTPRequestsTotal.WithLabelValues("POST", path, "200")))
	})

	t.Run("requires a token", func(t *testing.T) {
		f := newFixture(t, nil)

		status, body := f.do(t, purchaseRequest(t, `{"quantity":2}`, false))

		assert.Equal(t, 401, status)
		assert.Contains(t, body, `"code":"UNAUTHORIZED"`)
		f.purchase.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything, mock.Anything)
	})

	for _, body := range []string{`{"quantity":0}`, `{"quantity":-1}`, `{}`} {
		t.Run(fmt.Sprintf("rejects %s", body), func(t *testing.T) {
			f := newFixture(t, nil)

			status, resp := f.do(t, purchaseRequest(t, body, true))

			assert.Equal(t, 400, status)
			assert.Contains(t, resp, `"code":"VALIDATION_FAILED"`)
			f.purchase.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("unparseable body", func(t *testing.T) {
		f := newFixture(t, nil)

		status, body := f.do(t, purchaseRequest(t, `{"quantity":"two"}`, true))

		assert.Equal(t, 400, status)
		assert.Contains(t, body, `"code":"INVALID_REQUEST_BODY"`)
	})

	t.Run("conflict from the service", func(t *testing.T) {
		f := newFixture(t, nil)
		f.purchase.On("Purchase", mock.Anything, buyer, mock.Anything).
			Return(service.PurchaseResult{}, service.NewServiceError(constants.ErrCodeInsufficientStock,
				fmt.Errorf(constants.ErrFmtInsufficientStock, 1)))

		status, body := f.do(t, purchaseRequest(t, `{"quantity":2}`, true))

		assert.Equal(t, 400, status)
		assert.Contains(t, body, `"success":false`)
		assert.Contains(t, body, `"kind":"Conflict"`)
		assert.Contains(t, body, `"message":"Not enough stock available. Only 1 items left"`)
	})

	t.Run("internal failure hides details", func(t *testing.T) {
		f := newFixture(t, nil)
		f.purchase.On("Purchase", mock.Anything, buyer, mock.Anything).
			Return(service.PurchaseResult{}, service.NewServiceError(constants.ErrCodeSellerUpdateFailed,
				errors.New("deadlock found")))

		status, body := f.do(t, purchaseRequest(t, `{"quantity":2}`, true))

		assert.Equal(t, 500, status)
		assert.Contains(t, body, `"message":"Failed to update seller balance"`)
		assert.NotContains(t, body, "deadlock")
	})
}
