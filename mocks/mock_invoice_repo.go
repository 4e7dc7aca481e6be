package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"enertika/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByUUID(ctx context.Context, invoiceUUID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) SaveMaterials(ctx context.Context, entries []domain.MaterialEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockInvoiceRepo) SaveRelated(ctx context.Context, invoiceUUID string, related []domain.RelatedDocument) error {
	args := m.Called(ctx, invoiceUUID, related)
	return args.Error(0)
}
