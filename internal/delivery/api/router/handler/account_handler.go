package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"shortlink/internal/delivery/api/response"
	deliverycontext "shortlink/internal/delivery/context"
	"shortlink/internal/domain/entity"
	"shortlink/internal/domain/service"
	"shortlink/internal/usecase"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,max=1024"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email    *string `json:"email" validate:"omitempty,email,max=320"`
	Password *string `json:"password" validate:"omitempty,min=1,max=1024"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// accountResponse is the public view of an account; the password hash never leaves the server
// through this type.
type accountResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newAccountResponse(account *entity.Account) *accountResponse {
	return &accountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	}
}

// AccountHandler serves signup, login and the profile of the authenticated account.
type AccountHandler struct {
	uc       usecase.AccountUsecase
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, tokenSvc service.TokenService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:       uc,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Signup handles POST /auth/signup.
func (h *AccountHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	account, err := h.uc.CreateAccount(c.Request().Context(), &usecase.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newAccountResponse(account))
}

// Login handles POST /auth/login and answers with a fresh session token.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	account, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return h.respondWithToken(c, account)
}

// GetProfile handles GET /api/v1/account.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	current, err := currentAccount(c)
	if err != nil {
		return err
	}

	account, err := h.uc.GetProfile(c.Request().Context(), current.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account))
}

// UpdateProfile handles PATCH /api/v1/account. The token in the response reflects the updated
// row; the caller's old token keeps its old snapshot until it expires.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	current, err := currentAccount(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	updated, err := h.uc.UpdateProfile(c.Request().Context(), current, &usecase.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return h.respondWithToken(c, updated)
}

// DeleteAccount handles DELETE /api/v1/account.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	current, err := currentAccount(c)
	if err != nil {
		return err
	}

	deleted, err := h.uc.DeleteByEmail(c.Request().Context(), current.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(deleted))
}

func (h *AccountHandler) respondWithToken(c echo.Context, account *entity.Account) error {
	token, err := h.tokenSvc.Sign(account)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
			Error("Failed to sign session token", slog.String("account_id", account.ID.String()))

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenResponse{Token: token})
}
