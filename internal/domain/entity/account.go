// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered account holder.
// A signed session token carries a full copy of this struct as its claims, so the
// JSON names below are also the token's wire format.
type Account struct {
	ID           uuid.UUID `json:"id"`            // Server-assigned, stable identifier.
	Name         string    `json:"name"`          // Display name.
	Email        string    `json:"email"`         // Unique login identifier, compared case-sensitively.
	PasswordHash string    `json:"password_hash"` // Encoded argon2id hash, never the raw password.
	CreatedAt    time.Time `json:"created_at"`    // Creation time in UTC.
}

// AccountChanges lists the profile fields to modify. A nil field is left untouched.
type AccountChanges struct {
	Name         *string
	PasswordHash *string
	Email        *string
}

// IsEmpty reports whether no field is set.
func (c AccountChanges) IsEmpty() bool {
	return c.Name == nil && c.PasswordHash == nil && c.Email == nil
}
