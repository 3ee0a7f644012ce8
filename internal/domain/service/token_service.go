package service

import (
	"github.com/golang-jwt/jwt/v5"

	"shortlink/internal/domain/entity"
)

// Claims is the payload of a session token: a full account snapshot plus the registered claims.
type Claims struct {
	entity.Account
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying session tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Sign issues a token whose claims are a snapshot of account.
	Sign(account *entity.Account) (string, error)

	// Verify checks signature, issuer, audience and time window and returns the embedded
	// snapshot exactly as it was signed.
	Verify(token string) (*entity.Account, error)
}
