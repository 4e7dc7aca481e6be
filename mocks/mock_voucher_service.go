package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"enertika/internal/domain"
	"enertika/internal/service"
)

// MockVoucherService is a mock implementation of service.VoucherService.
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) ProcessBatch(ctx context.Context, files []service.UploadedFile, actor uuid.UUID) (*domain.BatchResult, error) {
	args := m.Called(ctx, files, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}

func (m *MockVoucherService) List(ctx context.Context, filters domain.VoucherFilters) ([]domain.VoucherView, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.VoucherView), args.Int(1), args.Error(2)
}

func (m *MockVoucherService) DefaultView(ctx context.Context) ([]domain.VoucherView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherView), args.Error(1)
}

func (m *MockVoucherService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Voucher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherService) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.Voucher, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherService) BulkUpdate(ctx context.Context, ids []uuid.UUID, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, ids, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoucherService) Stats(ctx context.Context, filters domain.VoucherFilters) (*domain.VoucherStats, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoucherStats), args.Error(1)
}

func (m *MockVoucherService) Export(ctx context.Context, filters domain.VoucherFilters, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, filters, format, w)
	return args.Error(0)
}

func (m *MockVoucherService) SearchPending(ctx context.Context, q string, limit int) ([]domain.VoucherView, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherView), args.Error(1)
}

func (m *MockVoucherService) Attachments(ctx context.Context, voucherID uuid.UUID) ([]domain.Attachment, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

func (m *MockVoucherService) Catalogs(ctx context.Context) (*domain.CatalogOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogOptions), args.Error(1)
}

func (m *MockVoucherService) SearchSuppliers(ctx context.Context, term string, limit int) ([]domain.Supplier, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}
