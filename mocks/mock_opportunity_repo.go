package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"enertika/internal/domain"
)

// MockClientRepo is a mock implementation of port.ClientRepository.
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) FindByNormalizedName(ctx context.Context, name string) (*domain.Client, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepo) Create(ctx context.Context, c *domain.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockOpportunityRepo is a mock implementation of port.OpportunityRepository.
type MockOpportunityRepo struct {
	mock.Mock
}

func (m *MockOpportunityRepo) CreateWithSite(ctx context.Context, opp *domain.Opportunity, site *domain.OpportunitySite) error {
	args := m.Called(ctx, opp, site)
	return args.Error(0)
}
