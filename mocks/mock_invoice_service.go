package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"enertika/internal/domain"
	"enertika/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) ProcessBatch(ctx context.Context, files []service.UploadedFile, actor uuid.UUID) (*domain.InvoiceBatchResult, error) {
	args := m.Called(ctx, files, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceBatchResult), args.Error(1)
}

func (m *MockInvoiceService) ConfirmMatch(ctx context.Context, invoiceUUID string, voucherID, actor uuid.UUID, saveRelation bool) (*domain.MatchConfirmation, error) {
	args := m.Called(ctx, invoiceUUID, voucherID, actor, saveRelation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchConfirmation), args.Error(1)
}
