package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlink/config"
	domainerrors "shortlink/internal/domain/errors"
)

func newTestHasher(t *testing.T) *argon2Hasher {
	t.Helper()

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	// Keep tests fast; production cost comes from config defaults.
	cfg.Argon2.Memory = 64
	cfg.Argon2.Iterations = 1

	h, ok := NewArgon2Hasher(cfg).(*argon2Hasher)
	require.True(t, ok)

	return h
}

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	hasher := newTestHasher(t)

	encoded, err := hasher.Hash("123456")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=64,t=1,p=1$"))

	ok, err := hasher.Verify("123456", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("hunter42", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2Hasher_HashIsSalted(t *testing.T) {
	hasher := newTestHasher(t)

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2Hasher_VerifyUsesEmbeddedParameters(t *testing.T) {
	hasher := newTestHasher(t)
	encoded, err := hasher.Hash("secret")
	require.NoError(t, err)

	// A hasher configured with different costs still verifies older hashes.
	other := newTestHasher(t)
	other.memory = 128
	other.iterations = 3

	ok, err := other.Verify("secret", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2Hasher_VerifyMalformed(t *testing.T) {
	hasher := newTestHasher(t)

	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "too few segments", encoded: "$argon2id$v=19$m=64,t=1,p=1$c2FsdA"},
		{name: "bcrypt hash", encoded: "$2a$10$abcdefghijklmnopqrstuu5Qf6Hb7ZKpGZr2G3N8V8F0c2nC1o2u"},
		{name: "wrong algorithm", encoded: "$argon2i$v=19$m=64,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{name: "wrong version", encoded: "$argon2id$v=16$m=64,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{name: "bad params", encoded: "$argon2id$v=19$m=x,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{name: "zero params", encoded: "$argon2id$v=19$m=0,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{name: "bad salt", encoded: "$argon2id$v=19$m=64,t=1,p=1$!!!$aGFzaGhhc2g"},
		{name: "bad hash", encoded: "$argon2id$v=19$m=64,t=1,p=1$c2FsdHNhbHQ$!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := hasher.Verify("whatever", tt.encoded)
			require.Error(t, err)
			assert.False(t, ok)
			assert.True(t, errors.Is(err, domainerrors.ErrMalformedPasswordHash))
			assert.Equal(t, domainerrors.KindCrypto, domainerrors.KindOf(err))
		})
	}
}
