package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"enertika/internal/domain"
	"enertika/internal/port"
)

// MockVoucherRepo is a mock implementation of port.VoucherRepository.
type MockVoucherRepo struct {
	mock.Mock
}

func (m *MockVoucherRepo) Create(ctx context.Context, v *domain.Voucher) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVoucherRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Voucher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepo) GetByInvoiceUUID(ctx context.Context, invoiceUUID string) (*domain.Voucher, error) {
	args := m.Called(ctx, invoiceUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepo) List(ctx context.Context, filters domain.VoucherFilters) ([]domain.VoucherView, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.VoucherView), args.Int(1), args.Error(2)
}

func (m *MockVoucherRepo) ListAll(ctx context.Context, filters domain.VoucherFilters) ([]domain.VoucherView, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherView), args.Error(1)
}

func (m *MockVoucherRepo) Search(ctx context.Context, term string, limit int) ([]domain.VoucherView, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherView), args.Error(1)
}

func (m *MockVoucherRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.Voucher, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepo) BulkUpdate(ctx context.Context, ids []uuid.UUID, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, ids, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoucherRepo) Stats(ctx context.Context, filters domain.VoucherFilters) (*domain.VoucherStats, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoucherStats), args.Error(1)
}

func (m *MockVoucherRepo) FindCandidates(ctx context.Context, q port.MatchQuery) ([]domain.MatchCandidate, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MatchCandidate), args.Error(1)
}

func (m *MockVoucherRepo) LinkInvoice(ctx context.Context, link domain.InvoiceLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockVoucherRepo) LinkAdvance(ctx context.Context, voucherID uuid.UUID, advanceInvoiceUUID string) error {
	args := m.Called(ctx, voucherID, advanceInvoiceUUID)
	return args.Error(0)
}
