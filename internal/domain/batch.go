package domain

import (
	"github.com/shopspring/decimal"
)

// BatchError records a file that could not be processed.
type BatchError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// DuplicateEntry records a file whose content matched an existing voucher.
type DuplicateEntry struct {
	Filename    string          `json:"filename"`
	PaymentDate string          `json:"payment_date"`
	Beneficiary string          `json:"beneficiary"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
}

// BatchResult partitions the files of one voucher upload. Every input file
// lands in exactly one of Inserted, Duplicates or Errors, in upload order.
type BatchResult struct {
	Inserted   int              `json:"inserted"`
	Duplicates []DuplicateEntry `json:"duplicates"`
	Errors     []BatchError     `json:"errors"`
}

// NewBatchResult returns an empty result with non-nil buckets.
func NewBatchResult() *BatchResult {
	return &BatchResult{
		Duplicates: []DuplicateEntry{},
		Errors:     []BatchError{},
	}
}

// Total returns the number of files accounted for.
func (r *BatchResult) Total() int {
	return r.Inserted + len(r.Duplicates) + len(r.Errors)
}

// InvoiceBatchResult partitions the files of one invoice upload.
type InvoiceBatchResult struct {
	Processed  []InvoiceMatch `json:"processed"`
	Duplicates []BatchError   `json:"duplicates"`
	Errors     []BatchError   `json:"errors"`
}

// NewInvoiceBatchResult returns an empty result with non-nil buckets.
func NewInvoiceBatchResult() *InvoiceBatchResult {
	return &InvoiceBatchResult{
		Processed:  []InvoiceMatch{},
		Duplicates: []BatchError{},
		Errors:     []BatchError{},
	}
}

// Total returns the number of files accounted for.
func (r *InvoiceBatchResult) Total() int {
	return len(r.Processed) + len(r.Duplicates) + len(r.Errors)
}
