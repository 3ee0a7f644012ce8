// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"shortlink/internal/domain/entity"
)

// --- Input DTOs ---

// CreateAccountInput defines the data required to open a new account.
type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for an account holder to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput lists the profile fields to change. A nil field is left untouched.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

// AccountUsecase defines the account operations the delivery layer depends on.
type AccountUsecase interface {
	// CreateAccount registers a new account; the email must not be taken.
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*entity.Account, error)

	// Login checks the credentials and returns the stored account.
	Login(ctx context.Context, input *LoginInput) (*entity.Account, error)

	// GetProfile reads the current state of the account with the given email.
	GetProfile(ctx context.Context, email string) (*entity.Account, error)

	// UpdateProfile applies the requested changes to the account the snapshot refers to and
	// returns the updated row.
	UpdateProfile(ctx context.Context, current *entity.Account, input *UpdateProfileInput) (*entity.Account, error)

	// DeleteByEmail removes the account and returns it.
	DeleteByEmail(ctx context.Context, email string) (*entity.Account, error)
}
