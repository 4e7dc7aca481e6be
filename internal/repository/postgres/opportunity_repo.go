package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"enertika/internal/domain"
	"enertika/internal/port"
)

type clientRepo struct {
	db *sqlx.DB
}

// NewClientRepo creates a new PostgreSQL-backed ClientRepository.
func NewClientRepo(db *sqlx.DB) port.ClientRepository {
	return &clientRepo{db: db}
}

// FindByNormalizedName compares legal names with dots and commas removed,
// case-insensitively. name must already be normalised the same way.
func (r *clientRepo) FindByNormalizedName(ctx context.Context, name string) (*domain.Client, error) {
	var c domain.Client
	err := r.db.GetContext(ctx, &c, `
		SELECT id, legal_name FROM clients
		WHERE UPPER(REPLACE(REPLACE(legal_name, '.', ''), ',', '')) = $1
		LIMIT 1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("clientRepo.FindByNormalizedName: %w", err)
	}
	return &c, nil
}

func (r *clientRepo) Create(ctx context.Context, c *domain.Client) error {
	c.ID = uuid.New()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO clients (id, legal_name, created_at) VALUES ($1, $2, NOW())",
		c.ID, c.LegalName)
	if err != nil {
		return fmt.Errorf("clientRepo.Create: %w", err)
	}
	return nil
}

type opportunityRepo struct {
	db *sqlx.DB
}

// NewOpportunityRepo creates a new PostgreSQL-backed OpportunityRepository.
func NewOpportunityRepo(db *sqlx.DB) port.OpportunityRepository {
	return &opportunityRepo{db: db}
}

// CreateWithSite inserts the opportunity and its site in one transaction.
func (r *opportunityRepo) CreateWithSite(ctx context.Context, opp *domain.Opportunity, site *domain.OpportunitySite) error {
	opp.ID = uuid.New()
	site.ID = uuid.New()
	site.OpportunityID = opp.ID

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("opportunityRepo.CreateWithSite begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO opportunities (id, op_id, title, project_name, client_name, client_id, created_by,
			simulation_owner_id, requested_by_id, requested_by_name, sales_channel,
			technology_id, request_type_id, status_id, close_reason_id,
			requested_at, deadline_computed, deadline_negotiated, delivered_at,
			kpi_internal, kpi_commitment, parent_id, after_hours, is_tender,
			priority, classification, site_count, created_at)
		VALUES (:id, :op_id, :title, :project_name, :client_name, :client_id, :created_by,
			:simulation_owner_id, :requested_by_id, :requested_by_name, :sales_channel,
			:technology_id, :request_type_id, :status_id, :close_reason_id,
			:requested_at, :deadline_computed, :deadline_negotiated, :delivered_at,
			:kpi_internal, :kpi_commitment, :parent_id, :after_hours, :is_tender,
			:priority, :classification, :site_count, NOW())`, opp)
	if err != nil {
		return fmt.Errorf("opportunityRepo.CreateWithSite opportunity: %w", err)
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO opportunity_sites (id, opportunity_id, name, address, status_id, request_type_id,
			closed_at, kpi_internal, kpi_commitment)
		VALUES (:id, :opportunity_id, :name, :address, :status_id, :request_type_id,
			:closed_at, :kpi_internal, :kpi_commitment)`, site)
	if err != nil {
		return fmt.Errorf("opportunityRepo.CreateWithSite site: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("opportunityRepo.CreateWithSite commit: %w", err)
	}
	return nil
}
