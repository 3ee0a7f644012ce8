package context

import (
	"context"

	"github.com/labstack/echo/v4"

	"shortlink/internal/domain/entity"
)

// WithAccount returns a copy of ctx carrying the authenticated account snapshot.
func WithAccount(ctx context.Context, account *entity.Account) context.Context {
	return context.WithValue(ctx, KeyAccount, account)
}

// AccountFromContext returns the snapshot stored by WithAccount.
func AccountFromContext(ctx context.Context) (*entity.Account, bool) {
	account, ok := ctx.Value(KeyAccount).(*entity.Account)

	return account, ok && account != nil
}

// SetAccount stores the snapshot on both the echo context and the request context.
func SetAccount(c echo.Context, account *entity.Account) {
	c.Set(string(KeyAccount), account)
	c.SetRequest(c.Request().WithContext(WithAccount(c.Request().Context(), account)))
}

// GetAccount returns the snapshot set by SetAccount.
func GetAccount(c echo.Context) (*entity.Account, bool) {
	if account, ok := c.Get(string(KeyAccount)).(*entity.Account); ok && account != nil {
		return account, true
	}

	return AccountFromContext(c.Request().Context())
}
