// Package middleware holds the API specific echo middlewares.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "shortlink/internal/delivery/context"
	"shortlink/internal/domain/entity"
	domainerrors "shortlink/internal/domain/errors"
	"shortlink/internal/domain/service"
)

const bearerPrefix = "Bearer "

// AuthMiddleware admits requests that carry a valid session token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Gate extracts the bearer token from r and returns the account snapshot it carries.
func (m *AuthMiddleware) Gate(r *http.Request) (*entity.Account, error) {
	header := r.Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, domainerrors.ErrMissingCredentials
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return nil, domainerrors.ErrMissingCredentials
	}

	return m.tokenSvc.Verify(token)
}

// Authenticate rejects the request with 401 unless Gate admits it, and otherwise exposes the
// snapshot to handlers and services.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		account, err := m.Gate(c.Request())
		if err != nil {
			return err
		}

		deliverycontext.SetAccount(c, account)

		return next(c)
	}
}
