// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"shortlink/internal/domain/entity"
)

// ErrAccountNotFound is a domain-specific error returned when no account matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
type AccountRepository interface {
	// Create persists a new account and fills in its generated ID and creation time.
	// An email that is already taken yields domainerrors.ErrDuplicateEmail.
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// DeleteByEmail removes the account with the given email and returns the removed row.
	DeleteByEmail(ctx context.Context, email string) (*entity.Account, error)

	// UpdateFields applies every non-nil change to the account identified by email in one
	// all-or-nothing step and returns the updated row.
	UpdateFields(ctx context.Context, email string, changes entity.AccountChanges) (*entity.Account, error)
}
