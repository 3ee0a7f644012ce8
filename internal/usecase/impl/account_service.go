// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "shortlink/internal/delivery/context"
	"shortlink/internal/domain/entity"
	domainerrors "shortlink/internal/domain/errors"
	"shortlink/internal/domain/repository"
	"shortlink/internal/domain/service"
	"shortlink/internal/usecase"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateAccount hashes the password up front, then checks the email and inserts the row in one
// transaction. A concurrent signup that wins the race still surfaces as ErrDuplicateEmail through
// the unique index.
func (srv *accountService) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*entity.Account, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name, email and password are required")
	}

	srv.log(ctx).Info("Creating account", slog.String("email", input.Email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	account := &entity.Account{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		_, err := accountRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrDuplicateEmail
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to look up account")
		}

		return accountRepo.Create(ctx, account)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateEmail) {
			srv.log(ctx).Info("Email already registered", slog.String("email", input.Email))
		}

		return nil, err
	}

	srv.log(ctx).Info("Account created", slog.String("account_id", account.ID.String()))

	return account, nil
}

// Login returns the stored account when the password matches.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrLoginAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	ok, err := srv.hasher.Verify(input.Password, account.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Stored password hash is unreadable",
			slog.String("account_id", account.ID.String()),
			slog.Any("error", err),
		)

		return nil, err
	}
	if !ok {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return account, nil
}

// GetProfile re-reads the account so the response reflects changes made after the token was issued.
func (srv *accountService) GetProfile(ctx context.Context, email string) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	return account, nil
}

// UpdateProfile hashes a new password first so that the repository can apply every change in a
// single atomic step. The account is located by the snapshot's email.
func (srv *accountService) UpdateProfile(ctx context.Context, current *entity.Account, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	changes := entity.AccountChanges{
		Name:  input.Name,
		Email: input.Email,
	}

	if input.Password != nil {
		hash, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}

	updated, err := srv.accountRepo.UpdateFields(ctx, current.Email, changes)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WithDetails("the account in the session no longer exists")
		}

		return nil, err
	}

	srv.log(ctx).Info("Profile updated",
		slog.String("account_id", updated.ID.String()),
		slog.Bool("name_changed", input.Name != nil),
		slog.Bool("email_changed", input.Email != nil),
		slog.Bool("password_changed", input.Password != nil),
	)

	return updated, nil
}

// DeleteByEmail removes the account together with its links.
func (srv *accountService) DeleteByEmail(ctx context.Context, email string) (*entity.Account, error) {
	deleted, err := srv.accountRepo.DeleteByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, err
	}

	srv.log(ctx).Info("Account deleted", slog.String("account_id", deleted.ID.String()))

	return deleted, nil
}
