package notifier

type NotificationRequest struct {
	RecipientID    string `json:"recipient_id"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	IdempotencyKey string `json:"idempotency_key"`
}
