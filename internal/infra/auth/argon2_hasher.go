// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"

	"shortlink/config"
	domainerrors "shortlink/internal/domain/errors"
	"shortlink/internal/domain/service"
)

const argon2Algorithm = "argon2id"

var b64 = base64.RawStdEncoding

// argon2Hasher is a concrete implementation of the PasswordHasher interface using argon2id.
// Hashes are PHC strings, so parameters travel with each hash and can change without
// invalidating stored credentials.
type argon2Hasher struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// NewArgon2Hasher is the constructor for argon2Hasher.
func NewArgon2Hasher(cfg *config.Config) service.PasswordHasher {
	p := cfg.Argon2

	return &argon2Hasher{
		memory:      p.Memory,
		iterations:  p.Iterations,
		parallelism: p.Parallelism,
		saltLength:  p.SaltLength,
		keyLength:   p.KeyLength,
	}
}

// Hash generates a salted argon2id hash encoded as
// $argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<hash>.
func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	key := argon2.IDKey([]byte(password), salt, h.iterations, h.memory, h.parallelism, h.keyLength)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Algorithm, argon2.Version, h.memory, h.iterations, h.parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify recomputes the hash with the parameters embedded in encodedHash.
func (h *argon2Hasher) Verify(password, encodedHash string) (bool, error) {
	params, salt, want, err := decodeArgon2Hash(encodedHash)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey([]byte(password), salt, params.iterations, params.memory, params.parallelism, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func decodeArgon2Hash(encoded string) (*argon2Hasher, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, hash
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, nil, nil, malformed("unexpected segment count")
	}
	if parts[1] != argon2Algorithm {
		return nil, nil, nil, malformed("unsupported algorithm " + parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, malformed("bad version segment")
	}
	if version != argon2.Version {
		return nil, nil, nil, malformed(fmt.Sprintf("unsupported version %d", version))
	}

	params := &argon2Hasher{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.iterations, &params.parallelism); err != nil {
		return nil, nil, nil, malformed("bad parameter segment")
	}
	if params.memory == 0 || params.iterations == 0 || params.parallelism == 0 {
		return nil, nil, nil, malformed("zero cost parameter")
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, malformed("bad salt encoding")
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, nil, malformed("bad hash encoding")
	}

	return params, salt, key, nil
}

func malformed(details string) error {
	return errors.WithStack(domainerrors.ErrMalformedPasswordHash.WithDetails(details))
}
