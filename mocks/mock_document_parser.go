package mocks

import (
	"github.com/stretchr/testify/mock"

	"enertika/internal/domain"
)

// MockVoucherExtractor is a mock implementation of port.VoucherExtractor.
type MockVoucherExtractor struct {
	mock.Mock
}

func (m *MockVoucherExtractor) Extract(content []byte, filename string) *domain.VoucherRecord {
	args := m.Called(content, filename)
	return args.Get(0).(*domain.VoucherRecord)
}

// MockInvoiceParser is a mock implementation of port.InvoiceParser.
type MockInvoiceParser struct {
	mock.Mock
}

func (m *MockInvoiceParser) ValidateContent(content []byte) string {
	args := m.Called(content)
	return args.String(0)
}

func (m *MockInvoiceParser) Parse(content []byte, filename string) (*domain.InvoiceRecord, error) {
	args := m.Called(content, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceRecord), args.Error(1)
}
