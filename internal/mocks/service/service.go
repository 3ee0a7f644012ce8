// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shortlink/internal/domain/entity"
	"shortlink/internal/domain/service"
)

// T is the subset of *testing.T the constructors need.
type T interface {
	mock.TestingT
	Cleanup(func())
}

func register(t T, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct{ mock.Mock }

func NewMockPasswordHasher(t T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	register(t, &m.Mock)

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, encodedHash string) (bool, error) {
	args := m.Called(password, encodedHash)

	return args.Bool(0), args.Error(1)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct{ mock.Mock }

func NewMockTokenService(t T) *MockTokenService {
	m := &MockTokenService{}
	register(t, &m.Mock)

	return m
}

func (m *MockTokenService) Sign(account *entity.Account) (string, error) {
	args := m.Called(account)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(token string) (*entity.Account, error) {
	args := m.Called(token)
	account, _ := args.Get(0).(*entity.Account)

	return account, args.Error(1)
}

// MockCodeGenerator mocks service.CodeGenerator.
type MockCodeGenerator struct{ mock.Mock }

func NewMockCodeGenerator(t T) *MockCodeGenerator {
	m := &MockCodeGenerator{}
	register(t, &m.Mock)

	return m
}

func (m *MockCodeGenerator) Generate() (string, error) {
	args := m.Called()

	return args.String(0), args.Error(1)
}

// MockQRCodeService mocks service.QRCodeService.
type MockQRCodeService struct{ mock.Mock }

func NewMockQRCodeService(t T) *MockQRCodeService {
	m := &MockQRCodeService{}
	register(t, &m.Mock)

	return m
}

func (m *MockQRCodeService) GenerateLinkQR(content string) ([]byte, error) {
	args := m.Called(content)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}

// MockEventPublisher mocks service.EventPublisher.
type MockEventPublisher struct{ mock.Mock }

func NewMockEventPublisher(t T) *MockEventPublisher {
	m := &MockEventPublisher{}
	register(t, &m.Mock)

	return m
}

func (m *MockEventPublisher) PublishLinkEvent(ctx context.Context, event *service.LinkEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}
