package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"shortlink/internal/delivery/api/response"
	"shortlink/internal/usecase"
)

type shortenRequest struct {
	URL string `json:"url" validate:"required,url,max=2048"`
}

type codeResponse struct {
	Code string `json:"code"`
}

type urlResponse struct {
	URL string `json:"url"`
}

type urlsResponse struct {
	URLs []string `json:"urls"`
}

// LinkHandler serves the authenticated account's short links.
type LinkHandler struct {
	uc usecase.LinkUsecase
}

// NewLinkHandler is the constructor for LinkHandler, injected by Fx.
func NewLinkHandler(uc usecase.LinkUsecase) *LinkHandler {
	return &LinkHandler{uc: uc}
}

// Shorten handles POST /api/v1/links.
func (h *LinkHandler) Shorten(c echo.Context) error {
	owner, err := currentAccount(c)
	if err != nil {
		return err
	}

	var req shortenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	code, err := h.uc.Shorten(c.Request().Context(), owner.ID, req.URL)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, codeResponse{Code: code})
}

// List handles GET /api/v1/links.
func (h *LinkHandler) List(c echo.Context) error {
	owner, err := currentAccount(c)
	if err != nil {
		return err
	}

	urls, err := h.uc.ListForOwner(c.Request().Context(), owner.ID)
	if err != nil {
		return errors.WithStack(err)
	}
	if urls == nil {
		urls = []string{}
	}

	return response.Success(c, http.StatusOK, urlsResponse{URLs: urls})
}

// Resolve handles GET /api/v1/links/:code.
func (h *LinkHandler) Resolve(c echo.Context) error {
	owner, err := currentAccount(c)
	if err != nil {
		return err
	}

	url, err := h.uc.Resolve(c.Request().Context(), owner.ID, c.Param("code"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, urlResponse{URL: url})
}

// QRCode handles GET /api/v1/links/:code/qr.
func (h *LinkHandler) QRCode(c echo.Context) error {
	owner, err := currentAccount(c)
	if err != nil {
		return err
	}

	png, err := h.uc.QRCode(c.Request().Context(), owner.ID, c.Param("code"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.PNG(c, png)
}
