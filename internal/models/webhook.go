package models

import "time"

// WebhookEventStatus is the processing state of an inbound event.
type WebhookEventStatus string

const (
	WebhookPending    WebhookEventStatus = "pending"
	WebhookProcessing WebhookEventStatus = "processing"
	WebhookProcessed  WebhookEventStatus = "processed"
	WebhookFailed     WebhookEventStatus = "failed"
)

func (s WebhookEventStatus) Valid() bool {
	switch s {
	case WebhookPending, WebhookProcessing, WebhookProcessed, WebhookFailed:
		return true
	}
	return false
}

// WebhookEvent is an inbound event receipt. Hash is the content digest that
// makes intake exactly-once; a second delivery with the same hash is not
// stored. A separate dispatcher marks events processed.
type WebhookEvent struct {
	ID          int64              `json:"id" db:"id"`
	AccountID   *int64             `json:"account_id,omitempty" db:"account_id"`
	Source      string             `json:"source" db:"source"`
	EventType   string             `json:"event_type" db:"event_type"`
	PayloadJSON string             `json:"payload_json" db:"payload_json"`
	Hash        string             `json:"hash" db:"hash"`
	ReceivedAt  time.Time          `json:"received_at" db:"received_at"`
	ProcessedAt *time.Time         `json:"processed_at,omitempty" db:"processed_at"`
	Status      WebhookEventStatus `json:"status" db:"status"`
	Attempts    int                `json:"attempts" db:"attempts"`
	Error       *string            `json:"error,omitempty" db:"error"`
}

// WebhookSubscription is an outbound subscription configuration.
type WebhookSubscription struct {
	ID         int64     `json:"id" db:"id"`
	AccountID  int64     `json:"account_id" db:"account_id"`
	Event      string    `json:"event" db:"event"`
	TargetURL  string    `json:"target_url" db:"target_url"`
	Secret     string    `json:"-" db:"secret"`
	Headers    *string   `json:"headers,omitempty" db:"headers"`
	FilterExpr *string   `json:"filter_expr,omitempty" db:"filter_expr"`
	RetryMax   int       `json:"retry_max" db:"retry_max"`
	IsEnabled  bool      `json:"is_enabled" db:"is_enabled"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// WebhookDeliveryLog records one delivery attempt for a subscription.
// Append-only; retry policy lives in the dispatcher, not here.
type WebhookDeliveryLog struct {
	ID              int64     `json:"id" db:"id"`
	SubscriptionID  int64     `json:"subscription_id" db:"subscription_id"`
	EventID         *int64    `json:"event_id,omitempty" db:"event_id"`
	StatusCode      *int      `json:"status_code,omitempty" db:"status_code"`
	LatencyMs       *int      `json:"latency_ms,omitempty" db:"latency_ms"`
	Attempts        int       `json:"attempts" db:"attempts"`
	ResponseSnippet *string   `json:"response_snippet,omitempty" db:"response_snippet"`
	DeliveredAt     time.Time `json:"delivered_at" db:"delivered_at"`
}
