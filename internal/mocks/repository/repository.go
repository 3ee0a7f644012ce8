// Package repository provides testify mocks for the domain repository interfaces.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"shortlink/internal/domain/entity"
	"shortlink/internal/domain/repository"
)

// T is the subset of *testing.T the constructors need.
type T interface {
	mock.TestingT
	Cleanup(func())
}

// MockAccountRepository mocks repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository registers expectation assertions on test cleanup.
func NewMockAccountRepository(t T) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	account, _ := args.Get(0).(*entity.Account)

	return account, args.Error(1)
}

func (m *MockAccountRepository) DeleteByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	account, _ := args.Get(0).(*entity.Account)

	return account, args.Error(1)
}

func (m *MockAccountRepository) UpdateFields(ctx context.Context, email string, changes entity.AccountChanges) (*entity.Account, error) {
	args := m.Called(ctx, email, changes)
	account, _ := args.Get(0).(*entity.Account)

	return account, args.Error(1)
}

// MockLinkRepository mocks repository.LinkRepository.
type MockLinkRepository struct {
	mock.Mock
}

// NewMockLinkRepository registers expectation assertions on test cleanup.
func NewMockLinkRepository(t T) *MockLinkRepository {
	m := &MockLinkRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockLinkRepository) Insert(ctx context.Context, link *entity.Link) error {
	return m.Called(ctx, link).Error(0)
}

func (m *MockLinkRepository) FindByURL(ctx context.Context, url string) (*entity.Link, error) {
	args := m.Called(ctx, url)
	link, _ := args.Get(0).(*entity.Link)

	return link, args.Error(1)
}

func (m *MockLinkRepository) FindByOwnerAndCode(ctx context.Context, ownerID uuid.UUID, code string) (*entity.Link, error) {
	args := m.Called(ctx, ownerID, code)
	link, _ := args.Get(0).(*entity.Link)

	return link, args.Error(1)
}

func (m *MockLinkRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Link, error) {
	args := m.Called(ctx, ownerID)
	links, _ := args.Get(0).([]*entity.Link)

	return links, args.Error(1)
}

// MockTransactionManager runs the callback against Factory without a real transaction.
type MockTransactionManager struct {
	Factory repository.RepositoryFactory
}

func (m *MockTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}

// MockRepositoryFactory hands out fixed repositories.
type MockRepositoryFactory struct {
	Accounts repository.AccountRepository
	Links    repository.LinkRepository
}

func (f *MockRepositoryFactory) AccountRepo() repository.AccountRepository { return f.Accounts }

func (f *MockRepositoryFactory) LinkRepo() repository.LinkRepository { return f.Links }
