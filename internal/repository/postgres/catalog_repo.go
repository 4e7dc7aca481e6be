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

// catalogTable describes where a catalog kind lives. Identifiers come only
// from this table, never from callers.
type catalogTable struct {
	table      string
	nameColumn string
	codeColumn string
}

var catalogTables = map[domain.CatalogKind]catalogTable{
	domain.CatalogTechnologies: {table: "cat_technologies", nameColumn: "name"},
	domain.CatalogRequestTypes: {table: "cat_request_types", nameColumn: "name", codeColumn: "internal_code"},
	domain.CatalogStatuses:     {table: "cat_statuses", nameColumn: "name"},
	domain.CatalogCloseReasons: {table: "cat_close_reasons", nameColumn: "reason"},
}

// purchasingDepartment scopes the buyer dropdown.
const purchasingDepartment = "Compras"

type catalogRepo struct {
	db *sqlx.DB
}

// NewCatalogRepo creates a new PostgreSQL-backed CatalogRepository.
func NewCatalogRepo(db *sqlx.DB) port.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) LoadCatalog(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogEntry, error) {
	spec, ok := catalogTables[kind]
	if !ok {
		return nil, domain.ErrUnknownCatalog
	}

	code := "''"
	if spec.codeColumn != "" {
		code = fmt.Sprintf("COALESCE(%s, '')", spec.codeColumn)
	}
	query := fmt.Sprintf(
		"SELECT id, %s AS name, %s AS code FROM %s WHERE is_active = TRUE ORDER BY id",
		spec.nameColumn, code, spec.table)

	var entries []domain.CatalogEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("catalogRepo.LoadCatalog %s: %w", kind, err)
	}
	return entries, nil
}

func (r *catalogRepo) LoadUsers(ctx context.Context) ([]domain.DirectoryUser, error) {
	var users []domain.DirectoryUser
	err := r.db.SelectContext(ctx, &users,
		"SELECT id, name FROM users WHERE is_active = TRUE ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("catalogRepo.LoadUsers: %w", err)
	}
	return users, nil
}

// FindSystemUser returns the user whose name contains nameHint or "migration",
// falling back to the oldest active user.
func (r *catalogRepo) FindSystemUser(ctx context.Context, nameHint string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.GetContext(ctx, &id, `
		SELECT id FROM users
		WHERE name ILIKE '%' || $1::text || '%' OR name ILIKE '%migration%'
		ORDER BY created_at
		LIMIT 1`, nameHint)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("catalogRepo.FindSystemUser: %w", err)
	}

	err = r.db.GetContext(ctx, &id,
		"SELECT id FROM users WHERE is_active = TRUE ORDER BY created_at LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, domain.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("catalogRepo.FindSystemUser fallback: %w", err)
	}
	return id, nil
}

func (r *catalogRepo) Options(ctx context.Context) (*domain.CatalogOptions, error) {
	opts := &domain.CatalogOptions{}

	if err := r.db.SelectContext(ctx, &opts.Zones,
		"SELECT id, name FROM purchase_zones WHERE is_active = TRUE ORDER BY name"); err != nil {
		return nil, fmt.Errorf("catalogRepo.Options zones: %w", err)
	}
	if err := r.db.SelectContext(ctx, &opts.Categories,
		"SELECT id, name FROM purchase_categories WHERE is_active = TRUE ORDER BY name"); err != nil {
		return nil, fmt.Errorf("catalogRepo.Options categories: %w", err)
	}
	if err := r.db.SelectContext(ctx, &opts.Projects, `
		SELECT id, standard_id AS code, name FROM gate_projects
		WHERE director_approved = TRUE
		ORDER BY standard_id DESC`); err != nil {
		return nil, fmt.Errorf("catalogRepo.Options projects: %w", err)
	}
	if err := r.db.SelectContext(ctx, &opts.Buyers, `
		SELECT id, name FROM users
		WHERE is_active = TRUE AND department = $1
		ORDER BY name`, purchasingDepartment); err != nil {
		return nil, fmt.Errorf("catalogRepo.Options buyers: %w", err)
	}
	return opts, nil
}

func (r *catalogRepo) SetActive(ctx context.Context, kind domain.CatalogKind, id int64, active bool) error {
	spec, ok := catalogTables[kind]
	if !ok {
		return domain.ErrUnknownCatalog
	}

	query := fmt.Sprintf("UPDATE %s SET is_active = $1 WHERE id = $2", spec.table)
	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("catalogRepo.SetActive: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCatalogEntryNotFound
	}
	return nil
}
