package notifier_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/mocks"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func matchRequestBody(request notifier.NotificationRequest) interface{} {
	return mock.MatchedBy(func(body interface{}) bool {
		buf, ok := body.(*bytes.Buffer)
		if !ok {
			return false
		}

		var req notifier.NotificationRequest
		if err := json.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(&req); err != nil {
			return false
		}

		return req == request
	})
}

func TestNotifier_Send(t *testing.T) {
	cfg := notifier.Config{
		BaseURL: "https://chat.campus.test",
		Timeout: 5 * time.Second,
	}

	url := cfg.BaseURL + notifier.NotificationsEndpoint
	headers := map[string]string{"Content-Type": "application/json"}

	request := notifier.NotificationRequest{
		RecipientID:    "3f1c2b8e-5d4a-4c6b-9e7f-1a2b3c4d5e6f",
		Title:          "Your item was sold",
		Body:           "Desk Lamp x2 for $50.00",
		IdempotencyKey: "tx_0b9f1c1e-4a55-4df0-8a0c-5d8c1f2e3a4b",
	}

	t.Run("successful send", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		n := notifier.NewNotifier(cfg, mockClient)

		body := `{"code": "success", "message": "queued", "result": {"notification_id": "n-1"}}`
		mockClient.On("Post", context.Background(), url, matchRequestBody(request), headers).
			Return(&http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(body))}, nil)

		response, err := n.Send(context.Background(), request)

		assert.NoError(t, err)
		assert.Equal(t, "success", response.Code)
		assert.Equal(t, "n-1", response.Result.NotificationID)
		mockClient.AssertExpectations(t)
	})

	t.Run("sends api key when configured", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		keyed := cfg
		keyed.APIKey = "internal-key"
		n := notifier.NewNotifier(keyed, mockClient)

		withKey := map[string]string{"Content-Type": "application/json", "X-API-Key": "internal-key"}
		mockClient.On("Post", context.Background(), url, matchRequestBody(request), withKey).
			Return(&http.Response{StatusCode: 201, Body: io.NopCloser(strings.NewReader(`{"code":"success"}`))}, nil)

		_, err := n.Send(context.Background(), request)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("timeout error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		n := notifier.NewNotifier(cfg, mockClient)

		mockClient.On("Post", context.Background(), url, matchRequestBody(request), headers).
			Return((*http.Response)(nil), context.DeadlineExceeded)

		response, err := n.Send(context.Background(), request)

		assert.Equal(t, notifier.ErrTimeout, err)
		assert.Empty(t, response)
		mockClient.AssertExpectations(t)
	})

	t.Run("network error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		n := notifier.NewNotifier(cfg, mockClient)

		networkErr := errors.New("connection refused")
		mockClient.On("Post", context.Background(), url, matchRequestBody(request), headers).
			Return((*http.Response)(nil), networkErr)

		_, err := n.Send(context.Background(), request)

		assert.Equal(t, networkErr, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("recipient not found", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		n := notifier.NewNotifier(cfg, mockClient)

		mockClient.On("Post", context.Background(), url, matchRequestBody(request), headers).
			Return(&http.Response{StatusCode: 404, Body: io.NopCloser(strings.NewReader(`{}`))}, nil)

		_, err := n.Send(context.Background(), request)

		assert.Equal(t, notifier.ErrRecipientNotFound, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		n := notifier.NewNotifier(cfg, mockClient)

		mockClient.On("Post", context.Background(), url, matchRequestBody(request), headers).
			Return(&http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(`{"code":`))}, nil)

		_, err := n.Send(context.Background(), request)

		assert.ErrorContains(t, err, "decoding error")
		mockClient.AssertExpectations(t)
	})

	t.Run("server error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		n := notifier.NewNotifier(cfg, mockClient)

		mockClient.On("Post", context.Background(), url, matchRequestBody(request), headers).
			Return(&http.Response{StatusCode: 503, Body: io.NopCloser(strings.NewReader(`{}`))}, nil)

		_, err := n.Send(context.Background(), request)

		assert.Equal(t, notifier.ErrServerError, err)
		mockClient.AssertExpectations(t)
	})
}
