package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/httpclient"
)

const NotificationsEndpoint = "/internal/notifications"

type Notifier interface {
	Send(ctx context.Context, request NotificationRequest) (Response, error)
}

type notifier struct {
	client httpclient.HTTPClient
	config Config
}

func NewNotifier(cfg Config, client httpclient.HTTPClient) Notifier {
	return &notifier{config: cfg, client: client}
}

func (n *notifier) Send(ctx context.Context, request NotificationRequest) (Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return Response{}, fmt.Errorf("encoding error: %w", err)
	}

	resp, err := n.client.Post(ctx, n.config.BaseURL+NotificationsEndpoint, &buf, n.headers())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Response{}, ErrTimeout
		}

		return Response{}, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Response{}, MapStatusToError(resp.StatusCode)
	}

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Response{}, fmt.Errorf("decoding error: %w", err)
	}

	return response, nil
}

func (n *notifier) headers() map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}

	if n.config.APIKey != "" {
		headers["X-API-Key"] = n.config.APIKey
	}

	return headers
}
