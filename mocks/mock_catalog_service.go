package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"enertika/internal/catalog"
	"enertika/internal/domain"
)

// MockCatalogService is a mock implementation of service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Snapshot), args.Error(1)
}

func (m *MockCatalogService) Directory(ctx context.Context, systemHint string) (*catalog.UserDirectory, error) {
	args := m.Called(ctx, systemHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.UserDirectory), args.Error(1)
}

func (m *MockCatalogService) SetActive(ctx context.Context, kind domain.CatalogKind, id int64, active bool) error {
	args := m.Called(ctx, kind, id, active)
	return args.Error(0)
}
