package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"enertika/internal/domain"
	"enertika/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	inv.CreatedAt = time.Now().UTC()

	query := `INSERT INTO invoices (uuid, supplier_id, issuer_rfc, issuer_name, total, currency,
		kind, issue_date, source_file, uploaded_by, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		inv.UUID, inv.SupplierID, inv.IssuerRFC, inv.IssuerName, inv.Total, inv.Currency,
		inv.Kind, inv.IssueDate, inv.SourceFile, inv.UploadedBy, inv.Payload, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByUUID(ctx context.Context, invoiceUUID string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE uuid = $1", invoiceUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByUUID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) SaveMaterials(ctx context.Context, entries []domain.MaterialEntry) error {
	if len(entries) == 0 {
		return nil
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO materials_history (invoice_uuid, supplier_id, line_number, purchased_on,
			description, quantity, unit_price, amount, unit, product_key, unit_key, currency)
		VALUES (:invoice_uuid, :supplier_id, :line_number, :purchased_on,
			:description, :quantity, :unit_price, :amount, :unit, :product_key, :unit_key, :currency)
		ON CONFLICT (invoice_uuid, line_number) DO NOTHING`,
		entries)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SaveMaterials: %w", err)
	}
	return nil
}

func (r *invoiceRepo) SaveRelated(ctx context.Context, invoiceUUID string, related []domain.RelatedDocument) error {
	for _, rd := range related {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO cfdi_related_documents (invoice_uuid, related_uuid, relation_type, relation_description)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (invoice_uuid, related_uuid) DO NOTHING`,
			invoiceUUID, rd.UUID, rd.RelationType, rd.RelationDescription)
		if err != nil {
			return fmt.Errorf("invoiceRepo.SaveRelated: %w", err)
		}
	}
	return nil
}
