package mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDuplicateFinder is a mock implementation of port.DuplicateFinder.
type MockDuplicateFinder struct {
	mock.Mock
}

func (m *MockDuplicateFinder) VoucherExists(ctx context.Context, paymentDate time.Time, beneficiary string, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, paymentDate, beneficiary, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockDuplicateFinder) InvoiceExists(ctx context.Context, invoiceUUID string) (bool, error) {
	args := m.Called(ctx, invoiceUUID)
	return args.Bool(0), args.Error(1)
}
