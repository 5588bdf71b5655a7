package notifier

import "time"

type Response struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Result  Result `json:"result,omitempty"`
}

type Result struct {
	NotificationID string    `json:"notification_id"`
	DeliveredAt    time.Time `json:"delivered_at"`
}
