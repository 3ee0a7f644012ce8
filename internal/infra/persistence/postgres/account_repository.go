package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shortlink/internal/domain/entity"
	domainerrors "shortlink/internal/domain/errors"
	"shortlink/internal/domain/repository"
	"shortlink/internal/infra/persistence/model"
)

// accountRepository implements the domain AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create assigns a UUIDv7 and creation time when missing and inserts the row.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate account id")
		}
		account.ID = id
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	accountM := fromAccountDomain(account)
	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if constraint, ok := uniqueViolation(err); ok && (constraint == "" || constraint == accountsEmailConstraint) {
			return domainerrors.ErrDuplicateEmail.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	return nil
}

// FindByEmail retrieves a single account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).Where("email = ?", email).Take(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// DeleteByEmail removes the account and returns the deleted row in one statement.
// Links of the account go with it through ON DELETE CASCADE.
func (repo *accountRepository) DeleteByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var deleted []model.AccountModel
	result := repo.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("email = ?", email).
		Delete(&deleted)
	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 || len(deleted) == 0 {
		return nil, repository.ErrAccountNotFound
	}

	return toAccountDomain(&deleted[0]), nil
}

// UpdateFields applies the requested changes with a single UPDATE ... RETURNING statement, so
// either every field changes or none does.
func (repo *accountRepository) UpdateFields(ctx context.Context, email string, changes entity.AccountChanges) (*entity.Account, error) {
	if changes.IsEmpty() {
		return repo.FindByEmail(ctx, email)
	}

	values := make(map[string]any, 3)
	if changes.Name != nil {
		values["name"] = *changes.Name
	}
	if changes.PasswordHash != nil {
		values["password_hash"] = *changes.PasswordHash
	}
	if changes.Email != nil {
		values["email"] = *changes.Email
	}

	var updated []model.AccountModel
	result := repo.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("email = ?", email).
		Updates(values)
	if result.Error != nil {
		if constraint, ok := uniqueViolation(result.Error); ok && (constraint == "" || constraint == accountsEmailConstraint) {
			return nil, domainerrors.ErrDuplicateEmail.WrapMessage("email already exists")
		}

		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 || len(updated) == 0 {
		return nil, repository.ErrAccountNotFound
	}

	return toAccountDomain(&updated[0]), nil
}

func toAccountDomain(m *model.AccountModel) *entity.Account {
	return &entity.Account{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func fromAccountDomain(a *entity.Account) *model.AccountModel {
	return &model.AccountModel{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}
}
