package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DuplicateFinder answers whether an extracted document was already persisted.
type DuplicateFinder interface {
	// VoucherExists reports an exact (payment date, beneficiary, amount) match.
	VoucherExists(ctx context.Context, paymentDate time.Time, beneficiary string, amount decimal.Decimal) (bool, error)
	// InvoiceExists reports whether the tax UUID is already stored.
	InvoiceExists(ctx context.Context, invoiceUUID string) (bool, error)
}
