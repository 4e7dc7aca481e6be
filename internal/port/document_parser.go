package port

import "enertika/internal/domain"

// VoucherExtractor turns a voucher PDF into a record. Failures are reported
// on the record, never returned.
type VoucherExtractor interface {
	Extract(content []byte, filename string) *domain.VoucherRecord
}

// InvoiceParser turns CFDI XML into an invoice record.
type InvoiceParser interface {
	// ValidateContent returns a rejection reason, or "" when the content looks like a CFDI.
	ValidateContent(content []byte) string
	Parse(content []byte, filename string) (*domain.InvoiceRecord, error)
}
