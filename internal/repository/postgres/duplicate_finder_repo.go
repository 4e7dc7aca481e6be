package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"enertika/internal/port"
)

type duplicateFinderRepo struct {
	db *sqlx.DB
}

// NewDuplicateFinderRepo creates a new PostgreSQL-backed DuplicateFinder.
func NewDuplicateFinderRepo(db *sqlx.DB) port.DuplicateFinder {
	return &duplicateFinderRepo{db: db}
}

func (r *duplicateFinderRepo) VoucherExists(
	ctx context.Context,
	paymentDate time.Time,
	beneficiary string,
	amount decimal.Decimal,
) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1
			FROM vouchers
			WHERE payment_date = $1
			  AND beneficiary = $2
			  AND amount = $3
		)`,
		paymentDate, beneficiary, amount,
	)
	if err != nil {
		return false, fmt.Errorf("duplicateFinderRepo.VoucherExists: %w", err)
	}
	return exists, nil
}

func (r *duplicateFinderRepo) InvoiceExists(ctx context.Context, invoiceUUID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM invoices WHERE uuid = $1)", invoiceUUID)
	if err != nil {
		return false, fmt.Errorf("duplicateFinderRepo.InvoiceExists: %w", err)
	}
	return exists, nil
}
