package usecase

import (
	"context"

	"github.com/google/uuid"
)

// LinkUsecase defines the short link operations. Every lookup is scoped to the owner.
type LinkUsecase interface {
	// Shorten returns the code for url, creating one unless the URL is already stored.
	Shorten(ctx context.Context, ownerID uuid.UUID, url string) (string, error)

	// Resolve returns the target URL of one of the owner's codes.
	Resolve(ctx context.Context, ownerID uuid.UUID, code string) (string, error)

	// ListForOwner returns the owner's target URLs in insertion order.
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]string, error)

	// QRCode renders one of the owner's links as a PNG QR code.
	QRCode(ctx context.Context, ownerID uuid.UUID, code string) ([]byte, error)
}
