package handler

import (
	"github.com/labstack/echo/v4"

	deliverycontext "shortlink/internal/delivery/context"
	"shortlink/internal/domain/entity"
	domainerrors "shortlink/internal/domain/errors"
)

var errMalformedBody = domainerrors.ErrValidationFailed.WithDetails("request body is malformed")

// bind decodes and validates the request body into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errMalformedBody
	}

	return c.Validate(req)
}

// currentAccount returns the snapshot placed by the auth middleware.
func currentAccount(c echo.Context) (*entity.Account, error) {
	account, ok := deliverycontext.GetAccount(c)
	if !ok {
		return nil, domainerrors.ErrMissingCredentials
	}

	return account, nil
}
