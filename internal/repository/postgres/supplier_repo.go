package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"enertika/internal/domain"
	"enertika/internal/port"
)

type supplierRepo struct {
	db *sqlx.DB
}

// NewSupplierRepo creates a new PostgreSQL-backed SupplierRepository.
func NewSupplierRepo(db *sqlx.DB) port.SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, s *domain.Supplier) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now().UTC()
	s.RFC = strings.ToUpper(s.RFC)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suppliers (id, rfc, legal_name, commercial_name, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.RFC, s.LegalName, s.CommercialName, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("supplierRepo.Create: %w", err)
	}
	return nil
}

func (r *supplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.GetContext(ctx, &s, "SELECT * FROM suppliers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, fmt.Errorf("supplierRepo.GetByID: %w", err)
	}
	return &s, nil
}

func (r *supplierRepo) GetByRFC(ctx context.Context, rfc string) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.GetContext(ctx, &s,
		"SELECT * FROM suppliers WHERE rfc = $1", strings.ToUpper(rfc))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, fmt.Errorf("supplierRepo.GetByRFC: %w", err)
	}
	return &s, nil
}

func (r *supplierRepo) Search(ctx context.Context, term string, limit int) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	err := r.db.SelectContext(ctx, &suppliers, `
		SELECT * FROM suppliers
		WHERE legal_name ILIKE '%' || $1::text || '%'
		   OR commercial_name ILIKE '%' || $1::text || '%'
		   OR rfc ILIKE '%' || $1::text || '%'
		ORDER BY legal_name
		LIMIT $2`,
		term, limit)
	if err != nil {
		return nil, fmt.Errorf("supplierRepo.Search: %w", err)
	}
	return suppliers, nil
}

func (r *supplierRepo) BeneficiaryNames(ctx context.Context, supplierID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.SelectContext(ctx, &names,
		"SELECT beneficiary FROM beneficiary_suppliers WHERE supplier_id = $1 ORDER BY created_at",
		supplierID)
	if err != nil {
		return nil, fmt.Errorf("supplierRepo.BeneficiaryNames: %w", err)
	}
	return names, nil
}

func (r *supplierRepo) SaveBeneficiary(ctx context.Context, beneficiary string, supplierID, createdBy uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO beneficiary_suppliers (beneficiary, supplier_id, created_by, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (beneficiary, supplier_id) DO NOTHING`,
		beneficiary, supplierID, createdBy)
	if err != nil {
		return fmt.Errorf("supplierRepo.SaveBeneficiary: %w", err)
	}
	return nil
}
