// Package shortcode generates random short link codes.
package shortcode

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"

	"shortlink/config"
	"shortlink/internal/domain/service"
)

type randomGenerator struct {
	alphabet []rune
	length   int
	max      *big.Int
}

// NewGenerator returns a CodeGenerator drawing uniformly from the configured alphabet.
func NewGenerator(cfg *config.Config) (service.CodeGenerator, error) {
	alphabet := []rune(cfg.Link.Alphabet)
	if len(alphabet) < 2 {
		return nil, errors.Errorf("link alphabet needs at least 2 characters, got %d", len(alphabet))
	}
	if cfg.Link.CodeLength <= 0 {
		return nil, errors.Errorf("link code length must be positive, got %d", cfg.Link.CodeLength)
	}

	return &randomGenerator{
		alphabet: alphabet,
		length:   cfg.Link.CodeLength,
		max:      big.NewInt(int64(len(alphabet))),
	}, nil
}

func (g *randomGenerator) Generate() (string, error) {
	code := make([]rune, g.length)
	for i := range code {
		n, err := rand.Int(rand.Reader, g.max)
		if err != nil {
			return "", errors.Wrap(err, "read random index")
		}
		code[i] = g.alphabet[n.Int64()]
	}

	return string(code), nil
}
