package service

import (
	"context"

	"github.com/rs/zerolog"

	"enertika/internal/catalog"
	"enertika/internal/domain"
	"enertika/internal/logger"
	"enertika/internal/port"
)

// CatalogService defines access to the reference catalogs.
type CatalogService interface {
	// Snapshot loads every catalog kind into a read-only resolver.
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
	// Directory loads active users and the system identity named by systemHint.
	Directory(ctx context.Context, systemHint string) (*catalog.UserDirectory, error)
	SetActive(ctx context.Context, kind domain.CatalogKind, id int64, active bool) error
}

type catalogService struct {
	repo port.CatalogRepository
	log  zerolog.Logger
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(repo port.CatalogRepository) CatalogService {
	return &catalogService{repo: repo, log: logger.WithComponent("catalog_service")}
}

func (s *catalogService) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	catalogs := make(map[domain.CatalogKind][]domain.CatalogEntry, len(domain.CatalogKinds))
	for _, kind := range domain.CatalogKinds {
		entries, err := s.repo.LoadCatalog(ctx, kind)
		if err != nil {
			return nil, err
		}
		catalogs[kind] = entries
	}

	snap := catalog.NewSnapshot(catalogs)
	ev := s.log.Info()
	for _, kind := range domain.CatalogKinds {
		ev = ev.Int(string(kind), snap.Size(kind))
	}
	ev.Msg("catalog snapshot loaded")
	return snap, nil
}

func (s *catalogService) Directory(ctx context.Context, systemHint string) (*catalog.UserDirectory, error) {
	system, err := s.repo.FindSystemUser(ctx, systemHint)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("users", len(users)).Str("system", system.String()).Msg("user directory loaded")
	return catalog.NewUserDirectory(users, system), nil
}

func (s *catalogService) SetActive(ctx context.Context, kind domain.CatalogKind, id int64, active bool) error {
	if err := s.repo.SetActive(ctx, kind, id, active); err != nil {
		return err
	}
	s.log.Info().Str("kind", string(kind)).Int64("id", id).Bool("active", active).Msg("catalog entry toggled")
	return nil
}
