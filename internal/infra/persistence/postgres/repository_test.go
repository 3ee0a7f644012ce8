package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shortlink/internal/domain/entity"
	domainerrors "shortlink/internal/domain/errors"
	"shortlink/internal/domain/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

var accountColumns = []string{"id", "name", "email", "password_hash", "created_at"}

func uniqueErr(constraint string) error {
	return &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraint}
}

func TestAccountRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(`INSERT INTO "accounts"`).WillReturnResult(sqlmock.NewResult(0, 1))

	account := &entity.Account{Name: "TeamMeng", Email: "Meng@acme.org", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), account))

	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Equal(t, uuid.Version(7), account.ID.Version())
	assert.False(t, account.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(`INSERT INTO "accounts"`).WillReturnError(uniqueErr(accountsEmailConstraint))

	err := repo.Create(context.Background(), &entity.Account{Name: "a", Email: "taken@acme.org", PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))
	assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
}

func TestAccountRepository_CreateStorageFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(`INSERT INTO "accounts"`).WillReturnError(sql.ErrConnDone)

	err := repo.Create(context.Background(), &entity.Account{Name: "a", Email: "a@acme.org", PasswordHash: "h"})
	require.Error(t, err)
	assert.Equal(t, domainerrors.KindStorage, domainerrors.KindOf(err))
	assert.True(t, errors.Is(err, sql.ErrConnDone))
}

func TestAccountRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	id := uuid.Must(uuid.NewV7())
	createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(id.String(), "TeamMeng", "Meng@acme.org", "hash", createdAt))

	got, err := repo.FindByEmail(context.Background(), "Meng@acme.org")
	require.NoError(t, err)
	assert.Equal(t, &entity.Account{ID: id, Name: "TeamMeng", Email: "Meng@acme.org", PasswordHash: "hash", CreatedAt: createdAt}, got)
}

func TestAccountRepository_FindByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts"`).WillReturnRows(sqlmock.NewRows(accountColumns))

	_, err := repo.FindByEmail(context.Background(), "nobody@acme.org")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_DeleteByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(`DELETE FROM "accounts" WHERE email = \$1 RETURNING \*`).
		WithArgs("Meng@acme.org").
		WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(id.String(), "TeamMeng", "Meng@acme.org", "hash", time.Now()))

	got, err := repo.DeleteByEmail(context.Background(), "Meng@acme.org")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Meng@acme.org", got.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_DeleteByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`DELETE FROM "accounts"`).WillReturnRows(sqlmock.NewRows(accountColumns))

	_, err := repo.DeleteByEmail(context.Background(), "nobody@acme.org")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_UpdateFields(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	id := uuid.Must(uuid.NewV7())
	name := "Meng"
	hash := "new-hash"

	mock.ExpectQuery(`UPDATE "accounts" SET .*"name".*"password_hash".* WHERE email = .* RETURNING \*`).
		WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(id.String(), name, "Meng@acme.org", hash, time.Now()))

	got, err := repo.UpdateFields(context.Background(), "Meng@acme.org", entity.AccountChanges{Name: &name, PasswordHash: &hash})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, hash, got.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_UpdateFieldsErrors(t *testing.T) {
	newEmail := "taken@acme.org"

	tests := []struct {
		name    string
		setup   func(sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "stale email",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`UPDATE "accounts"`).WillReturnRows(sqlmock.NewRows(accountColumns))
			},
			wantErr: repository.ErrAccountNotFound,
		},
		{
			name: "email taken",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`UPDATE "accounts"`).WillReturnError(uniqueErr(accountsEmailConstraint))
			},
			wantErr: domainerrors.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			_, err := NewAccountRepository(db).UpdateFields(context.Background(), "old@acme.org", entity.AccountChanges{Email: &newEmail})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAccountRepository_UpdateFieldsNoChangesReads(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(`SELECT \* FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(id.String(), "TeamMeng", "Meng@acme.org", "hash", time.Now()))

	got, err := NewAccountRepository(db).UpdateFields(context.Background(), "Meng@acme.org", entity.AccountChanges{})
	require.NoError(t, err)
	assert.Equal(t, "TeamMeng", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var linkColumns = []string{"code", "owner_id", "url", "created_at"}

func TestLinkRepository_Insert(t *testing.T) {
	owner := uuid.Must(uuid.NewV7())

	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "ok"},
		{name: "code collision", dbErr: uniqueErr(linksCodeConstraint), wantErr: repository.ErrLinkCodeConflict},
		{name: "url exists", dbErr: uniqueErr(linksURLConstraint), wantErr: repository.ErrLinkURLConflict},
		{name: "owner gone", dbErr: &pgconn.PgError{Code: pgForeignKeyViolation}, wantErr: repository.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			exp := mock.ExpectExec(`INSERT INTO "links"`)
			if tt.dbErr != nil {
				exp.WillReturnError(tt.dbErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			link := &entity.Link{Code: "abc234", OwnerID: owner, URL: "https://example.com"}
			err := NewLinkRepository(db).Insert(context.Background(), link)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.False(t, link.CreatedAt.IsZero())
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLinkRepository_FindByOwnerAndCode(t *testing.T) {
	db, mock := newMockDB(t)
	owner := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(`SELECT \* FROM "links" WHERE code = \$1 AND owner_id = \$2`).
		WillReturnRows(sqlmock.NewRows(linkColumns).AddRow("abc234", owner.String(), "https://example.com", time.Now()))

	got, err := NewLinkRepository(db).FindByOwnerAndCode(context.Background(), owner, "abc234")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got.URL)
	assert.Equal(t, owner, got.OwnerID)
}

func TestLinkRepository_FindNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLinkRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "links" WHERE code`).WillReturnRows(sqlmock.NewRows(linkColumns))
	mock.ExpectQuery(`SELECT \* FROM "links" WHERE url`).WillReturnRows(sqlmock.NewRows(linkColumns))

	_, err := repo.FindByOwnerAndCode(context.Background(), uuid.New(), "zzzzzz")
	assert.ErrorIs(t, err, repository.ErrLinkNotFound)

	_, err = repo.FindByURL(context.Background(), "https://nowhere.example")
	assert.ErrorIs(t, err, repository.ErrLinkNotFound)
}

func TestLinkRepository_ListByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	owner := uuid.Must(uuid.NewV7())
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "links" WHERE owner_id = \$1 ORDER BY created_at ASC,code ASC`).
		WithArgs(owner).
		WillReturnRows(sqlmock.NewRows(linkColumns).
			AddRow("first1", owner.String(), "https://a.example", now).
			AddRow("second", owner.String(), "https://b.example", now.Add(time.Second)))

	links, err := NewLinkRepository(db).ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "https://a.example", links[0].URL)
	assert.Equal(t, "https://b.example", links[1].URL)
}

func TestTransactionManager_CommitAndRollback(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "accounts"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewTransactionManager(db).Execute(context.Background(), func(f repository.RepositoryFactory) error {
			return f.AccountRepo().Create(context.Background(), &entity.Account{Name: "a", Email: "a@acme.org", PasswordHash: "h"})
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := NewTransactionManager(db).Execute(context.Background(), func(repository.RepositoryFactory) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(sql.ErrTxDone)

		err := NewTransactionManager(db).Execute(context.Background(), func(repository.RepositoryFactory) error {
			return nil
		})
		assert.ErrorIs(t, err, domainerrors.ErrTransactionFailed)
	})
}

func TestRunMigrations_UsesEmbeddedFS(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir

		return nil
	}
	require.NoError(t, RunMigrations(context.Background(), nil))
	assert.Equal(t, ".", gotDir)

	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("dirty database")
	}
	err := RunMigrations(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run migrations")
}
