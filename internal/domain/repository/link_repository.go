package repository

import (
	"context"
	"errors"

	"shortlink/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for link persistence.
var (
	// ErrLinkNotFound is returned when no link matches the lookup.
	ErrLinkNotFound = errors.New("link not found")
	// ErrLinkURLConflict is returned by Insert when the target URL is already stored.
	ErrLinkURLConflict = errors.New("link url already exists")
	// ErrLinkCodeConflict is returned by Insert when the generated code is already taken.
	ErrLinkCodeConflict = errors.New("link code already exists")
)

// LinkRepository defines the standard operations for link persistence.
//
// Shortening is idempotent per URL through a two-step contract: Insert reports
// ErrLinkURLConflict without touching the stored row, and the caller then reads the
// existing row with FindByURL.
type LinkRepository interface {
	// Insert persists a new link.
	Insert(ctx context.Context, link *entity.Link) error

	// FindByURL retrieves the link stored for a target URL, whoever owns it.
	FindByURL(ctx context.Context, url string) (*entity.Link, error)

	// FindByOwnerAndCode retrieves a link only if both code and owner match.
	FindByOwnerAndCode(ctx context.Context, ownerID uuid.UUID, code string) (*entity.Link, error)

	// ListByOwner returns every link of an owner in insertion order.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Link, error)
}
