package service

import (
	"context"
	"time"
)

// RatingEvent represents a rating submission published for downstream consumers
// (dashboards, store-owner notifiers). Publishing is best-effort and never blocks
// the submitting request's success.
type RatingEvent struct {
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing
	RatingID  string    `json:"rating_id"`
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Value     int       `json:"value"`
	RatedAt   time.Time `json:"rated_at"`
}

// EventPublisher defines the interface for publishing rating events.
type EventPublisher interface {
	// PublishRatingEvent publishes a rating submission event.
	PublishRatingEvent(ctx context.Context, event *RatingEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
