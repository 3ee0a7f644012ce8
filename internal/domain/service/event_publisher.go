package service

import (
	"context"
)

// LinkEvent describes a successful shorten call.
type LinkEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	Code      string `json:"code"`
	OwnerID   string `json:"owner_id"`
	URL       string `json:"url"`
	Reused    bool   `json:"reused"` // True when the URL was already stored and its code returned
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishLinkEvent publishes a link event for downstream consumers
	PublishLinkEvent(ctx context.Context, event *LinkEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
