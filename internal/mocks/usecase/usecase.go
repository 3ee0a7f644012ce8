// Package usecase provides testify mocks for the usecase interfaces.
package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"shortlink/internal/domain/entity"
	"shortlink/internal/usecase"
)

// T is the subset of *testing.T the constructors need.
type T interface {
	mock.TestingT
	Cleanup(func())
}

// MockAccountUsecase mocks usecase.AccountUsecase.
type MockAccountUsecase struct{ mock.Mock }

func NewMockAccountUsecase(t T) *MockAccountUsecase {
	m := &MockAccountUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountUsecase) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*entity.Account, error) {
	return accountResult(m.Called(ctx, input))
}

func (m *MockAccountUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*entity.Account, error) {
	return accountResult(m.Called(ctx, input))
}

func (m *MockAccountUsecase) GetProfile(ctx context.Context, email string) (*entity.Account, error) {
	return accountResult(m.Called(ctx, email))
}

func (m *MockAccountUsecase) UpdateProfile(ctx context.Context, current *entity.Account, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	return accountResult(m.Called(ctx, current, input))
}

func (m *MockAccountUsecase) DeleteByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return accountResult(m.Called(ctx, email))
}

func accountResult(args mock.Arguments) (*entity.Account, error) {
	account, _ := args.Get(0).(*entity.Account)

	return account, args.Error(1)
}

// MockLinkUsecase mocks usecase.LinkUsecase.
type MockLinkUsecase struct{ mock.Mock }

func NewMockLinkUsecase(t T) *MockLinkUsecase {
	m := &MockLinkUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockLinkUsecase) Shorten(ctx context.Context, ownerID uuid.UUID, url string) (string, error) {
	args := m.Called(ctx, ownerID, url)

	return args.String(0), args.Error(1)
}

func (m *MockLinkUsecase) Resolve(ctx context.Context, ownerID uuid.UUID, code string) (string, error) {
	args := m.Called(ctx, ownerID, code)

	return args.String(0), args.Error(1)
}

func (m *MockLinkUsecase) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, ownerID)
	urls, _ := args.Get(0).([]string)

	return urls, args.Error(1)
}

func (m *MockLinkUsecase) QRCode(ctx context.Context, ownerID uuid.UUID, code string) ([]byte, error) {
	args := m.Called(ctx, ownerID, code)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}
