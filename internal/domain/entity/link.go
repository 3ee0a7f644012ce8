package entity

import (
	"time"

	"github.com/google/uuid"
)

// Link maps a short code to a target URL on behalf of one owner.
// The URL is unique across all owners: shortening an already known URL yields the existing code.
type Link struct {
	Code      string    // Fixed-length random code, primary key.
	OwnerID   uuid.UUID // Account that first shortened the URL.
	URL       string    // Target URL.
	CreatedAt time.Time
}
