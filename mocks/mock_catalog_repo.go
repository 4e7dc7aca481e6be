package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"enertika/internal/domain"
)

// MockCatalogRepo is a mock implementation of port.CatalogRepository.
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) LoadCatalog(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogEntry, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogEntry), args.Error(1)
}

func (m *MockCatalogRepo) LoadUsers(ctx context.Context) ([]domain.DirectoryUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DirectoryUser), args.Error(1)
}

func (m *MockCatalogRepo) FindSystemUser(ctx context.Context, nameHint string) (uuid.UUID, error) {
	args := m.Called(ctx, nameHint)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockCatalogRepo) Options(ctx context.Context) (*domain.CatalogOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogOptions), args.Error(1)
}

func (m *MockCatalogRepo) SetActive(ctx context.Context, kind domain.CatalogKind, id int64, active bool) error {
	args := m.Called(ctx, kind, id, active)
	return args.Error(0)
}
