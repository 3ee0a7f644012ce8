// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (argon2id), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. The salt is fresh on every call,
	// so hashing the same password twice yields different strings.
	Hash(password string) (string, error)

	// Verify reports whether password matches the encoded hash. A well-formed hash that does not
	// match returns false with a nil error; an error is returned only when the encoding itself
	// cannot be parsed.
	Verify(password, encodedHash string) (bool, error)
}
