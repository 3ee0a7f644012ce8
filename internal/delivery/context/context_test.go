package context

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlink/internal/domain/entity"
)

func newEchoContext() echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestAccountHelpers(t *testing.T) {
	c := newEchoContext()

	_, ok := GetAccount(c)
	assert.False(t, ok)

	account := &entity.Account{ID: uuid.New(), Email: "meng@acme.org"}
	SetAccount(c, account)

	got, ok := GetAccount(c)
	require.True(t, ok)
	assert.Same(t, account, got)

	fromCtx, ok := AccountFromContext(c.Request().Context())
	require.True(t, ok)
	assert.Same(t, account, fromCtx)

	_, ok = AccountFromContext(WithAccount(context.Background(), nil))
	assert.False(t, ok)
}

func TestGetRequestID(t *testing.T) {
	t.Run("echo context", func(t *testing.T) {
		c := newEchoContext()
		SetRequestID(c, "req-1")
		assert.Equal(t, "req-1", GetRequestID(c))
	})

	t.Run("request context", func(t *testing.T) {
		c := newEchoContext()
		c.SetRequest(c.Request().WithContext(WithRequestID(c.Request().Context(), "req-2")))
		assert.Equal(t, "req-2", GetRequestID(c))
	})

	t.Run("generated", func(t *testing.T) {
		_, err := uuid.Parse(GetRequestID(newEchoContext()))
		assert.NoError(t, err)
	})
}
