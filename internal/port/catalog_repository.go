package port

import (
	"context"

	"github.com/google/uuid"

	"enertika/internal/domain"
)

// CatalogRepository provides read access to reference catalogs and the user directory.
type CatalogRepository interface {
	LoadCatalog(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogEntry, error)
	LoadUsers(ctx context.Context) ([]domain.DirectoryUser, error)
	FindSystemUser(ctx context.Context, nameHint string) (uuid.UUID, error)
	Options(ctx context.Context) (*domain.CatalogOptions, error)
	SetActive(ctx context.Context, kind domain.CatalogKind, id int64, active bool) error
}

// ClientRepository defines the contract for customer persistence.
type ClientRepository interface {
	FindByNormalizedName(ctx context.Context, name string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) error
}

// OpportunityRepository stores imported opportunities.
type OpportunityRepository interface {
	CreateWithSite(ctx context.Context, opp *domain.Opportunity, site *domain.OpportunitySite) error
}
