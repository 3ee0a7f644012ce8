package auth

import (
	"crypto"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"shortlink/config"
	"shortlink/internal/domain/entity"
	domainerrors "shortlink/internal/domain/errors"
	"shortlink/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using EdDSA-signed JWTs.
type jwtService struct {
	privateKey crypto.PrivateKey
	publicKey  crypto.PublicKey
	issuer     string
	audience   string
	validity   time.Duration
	leeway     time.Duration
	now        func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It parses the PEM key pair once; a malformed key aborts start-up.
func NewJWTService(cfg *config.Config, keys *KeyMaterial) (service.TokenService, error) {
	privateKey, err := jwt.ParseEdPrivateKeyFromPEM(keys.PrivateKeyPEM)
	if err != nil {
		return nil, errors.Wrap(err, "parse token private key")
	}
	publicKey, err := jwt.ParseEdPublicKeyFromPEM(keys.PublicKeyPEM)
	if err != nil {
		return nil, errors.Wrap(err, "parse token public key")
	}

	var leeway time.Duration
	if cfg.Token.Leeway != nil {
		leeway = *cfg.Token.Leeway
	}

	return &jwtService{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     cfg.Token.Issuer,
		audience:   cfg.Token.Audience,
		validity:   cfg.Token.Validity,
		leeway:     leeway,
		now:        time.Now,
	}, nil
}

// Sign issues a token carrying a snapshot of account.
func (s *jwtService) Sign(account *entity.Account) (string, error) {
	now := s.now()
	claims := &service.Claims{
		Account: *account,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(s.privateKey)
	if err != nil {
		return "", domainerrors.ErrTokenSignFailed.WrapMessage(err.Error())
	}

	return signed, nil
}

// Verify returns the embedded account when the token passes every check. All failures collapse
// into ErrInvalidToken; the cause is kept in the error chain for logging.
func (s *jwtService) Verify(tokenString string) (*entity.Account, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.publicKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}

	account := claims.Account

	return &account, nil
}
