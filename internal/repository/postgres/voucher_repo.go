package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"enertika/internal/domain"
	"enertika/internal/port"
)

const voucherViewSelect = `
	SELECT v.*,
		u.name AS buyer_name,
		COALESCE(s.commercial_name, s.legal_name) AS supplier_name,
		z.name AS zone_name,
		p.name AS project_name,
		c.name AS category_name
	FROM vouchers v
	LEFT JOIN users u ON u.id = v.captured_by
	LEFT JOIN suppliers s ON s.id = v.supplier_id
	LEFT JOIN purchase_zones z ON z.id = v.zone_id
	LEFT JOIN gate_projects p ON p.id = v.project_id
	LEFT JOIN purchase_categories c ON c.id = v.category_id`

type voucherRepo struct {
	db *sqlx.DB
}

// NewVoucherRepo creates a new PostgreSQL-backed VoucherRepository.
func NewVoucherRepo(db *sqlx.DB) port.VoucherRepository {
	return &voucherRepo{db: db}
}

func (r *voucherRepo) Create(ctx context.Context, v *domain.Voucher) error {
	v.ID = uuid.New()
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	if v.Status == "" {
		v.Status = domain.VoucherStatusPending
	}

	query := `INSERT INTO vouchers (id, payment_date, beneficiary, amount, currency, status,
		source_file, captured_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.PaymentDate, v.Beneficiary, v.Amount, v.Currency, v.Status,
		v.SourceFile, v.CapturedBy, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("voucherRepo.Create: %w", err)
	}
	return nil
}

func (r *voucherRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Voucher, error) {
	var v domain.Voucher
	err := r.db.GetContext(ctx, &v, "SELECT * FROM vouchers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVoucherNotFound
		}
		return nil, fmt.Errorf("voucherRepo.GetByID: %w", err)
	}
	return &v, nil
}

func (r *voucherRepo) GetByInvoiceUUID(ctx context.Context, invoiceUUID string) (*domain.Voucher, error) {
	var v domain.Voucher
	err := r.db.GetContext(ctx, &v,
		"SELECT * FROM vouchers WHERE invoice_uuid = $1 LIMIT 1", invoiceUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVoucherNotFound
		}
		return nil, fmt.Errorf("voucherRepo.GetByInvoiceUUID: %w", err)
	}
	return &v, nil
}

func (r *voucherRepo) List(ctx context.Context, filters domain.VoucherFilters) ([]domain.VoucherView, int, error) {
	where, args, argN := buildVoucherWhere(&filters, 1)

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM vouchers v "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("voucherRepo.List count: %w", err)
	}

	query := voucherViewSelect + " " + where +
		fmt.Sprintf(" ORDER BY v.payment_date DESC, v.created_at DESC LIMIT $%d OFFSET $%d", argN, argN+1)
	args = append(args, filters.Limit, filters.Offset)

	var views []domain.VoucherView
	if err := r.db.SelectContext(ctx, &views, query, args...); err != nil {
		return nil, 0, fmt.Errorf("voucherRepo.List: %w", err)
	}
	return views, total, nil
}

func (r *voucherRepo) ListAll(ctx context.Context, filters domain.VoucherFilters) ([]domain.VoucherView, error) {
	where, args, _ := buildVoucherWhere(&filters, 1)

	var views []domain.VoucherView
	err := r.db.SelectContext(ctx, &views,
		voucherViewSelect+" "+where+" ORDER BY v.payment_date DESC, v.created_at DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("voucherRepo.ListAll: %w", err)
	}
	return views, nil
}

func (r *voucherRepo) Search(ctx context.Context, term string, limit int) ([]domain.VoucherView, error) {
	var views []domain.VoucherView
	err := r.db.SelectContext(ctx, &views, voucherViewSelect+`
		WHERE v.status = $1
		  AND (v.beneficiary ILIKE '%' || $2::text || '%' OR v.amount::text LIKE '%' || $2::text || '%')
		ORDER BY v.payment_date DESC
		LIMIT $3`,
		domain.VoucherStatusPending, term, limit)
	if err != nil {
		return nil, fmt.Errorf("voucherRepo.Search: %w", err)
	}
	return views, nil
}

func (r *voucherRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.Voucher, error) {
	set, args, argN, err := buildVoucherSet(fields, 1)
	if err != nil {
		return nil, err
	}
	args = append(args, id)

	var v domain.Voucher
	query := fmt.Sprintf("UPDATE vouchers SET %s WHERE id = $%d RETURNING *", set, argN)
	if err := r.db.GetContext(ctx, &v, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVoucherNotFound
		}
		return nil, fmt.Errorf("voucherRepo.Update: %w", err)
	}
	return &v, nil
}

func (r *voucherRepo) BulkUpdate(ctx context.Context, ids []uuid.UUID, fields map[string]interface{}) (int64, error) {
	set, args, argN, err := buildVoucherSet(fields, 1)
	if err != nil {
		return 0, err
	}
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}
	args = append(args, idStrings)

	query := fmt.Sprintf("UPDATE vouchers SET %s WHERE id = ANY($%d::uuid[])", set, argN)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("voucherRepo.BulkUpdate: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func (r *voucherRepo) Stats(ctx context.Context, filters domain.VoucherFilters) (*domain.VoucherStats, error) {
	where, args, _ := buildVoucherWhere(&filters, 1)

	var stats domain.VoucherStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE v.status = 'PENDING') AS pending,
			COUNT(*) FILTER (WHERE v.status = 'INVOICED') AS invoiced,
			COALESCE(SUM(v.amount) FILTER (WHERE v.currency = 'MXN'), 0) AS total_mxn,
			COALESCE(SUM(v.amount) FILTER (WHERE v.currency = 'USD'), 0) AS total_usd
		FROM vouchers v `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("voucherRepo.Stats: %w", err)
	}
	return &stats, nil
}

func (r *voucherRepo) FindCandidates(ctx context.Context, q port.MatchQuery) ([]domain.MatchCandidate, error) {
	query := `SELECT id, payment_date, beneficiary, amount, currency
		FROM vouchers
		WHERE status = $1
		  AND currency = $2
		  AND ABS(amount - $3) <= $4`
	args := []interface{}{domain.VoucherStatusPending, q.Currency, q.Amount, q.Tolerance}
	if q.Beneficiary != "" {
		query += " AND UPPER(beneficiary) = UPPER($5)"
		args = append(args, q.Beneficiary)
	}
	query += " ORDER BY payment_date DESC"

	var candidates []domain.MatchCandidate
	if err := r.db.SelectContext(ctx, &candidates, query, args...); err != nil {
		return nil, fmt.Errorf("voucherRepo.FindCandidates: %w", err)
	}
	return candidates, nil
}

func (r *voucherRepo) LinkInvoice(ctx context.Context, link domain.InvoiceLink) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE vouchers
		SET invoice_uuid = $1, supplier_id = $2, status = $3, invoice_kind = $4,
			is_advance = $5, updated_at = NOW()
		WHERE id = $6 AND status = $7`,
		link.InvoiceUUID, link.SupplierID, link.Status, link.Kind,
		link.IsAdvance, link.VoucherID, domain.VoucherStatusPending)
	if err != nil {
		return fmt.Errorf("voucherRepo.LinkInvoice: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVoucherNotPending
	}
	return nil
}

func (r *voucherRepo) LinkAdvance(ctx context.Context, voucherID uuid.UUID, advanceInvoiceUUID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE vouchers
		SET advance_voucher_id = (SELECT id FROM vouchers WHERE invoice_uuid = $1 LIMIT 1),
			updated_at = NOW()
		WHERE id = $2
		  AND EXISTS (SELECT 1 FROM vouchers WHERE invoice_uuid = $1)`,
		advanceInvoiceUUID, voucherID)
	if err != nil {
		return fmt.Errorf("voucherRepo.LinkAdvance: %w", err)
	}
	return nil
}
