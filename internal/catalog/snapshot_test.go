package catalog_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"enertika/internal/catalog"
	"enertika/internal/domain"
)

func newSnapshot() *catalog.Snapshot {
	return catalog.NewSnapshot(map[domain.CatalogKind][]domain.CatalogEntry{
		domain.CatalogTechnologies: {
			{ID: 1, Name: "Fotovoltaica"},
			{ID: 2, Name: "Almacenamiento"},
		},
		domain.CatalogRequestTypes: {
			{ID: 10, Name: "Cotización", Code: "COT"},
			{ID: 11, Name: "Actualización de oferta", Code: "ACT"},
			{ID: 12, Name: "Licitación", Code: ""},
		},
		domain.CatalogStatuses: {
			{ID: 20, Name: "EN PROCESO"},
			{ID: 21, Name: "PROCESO DETENIDO"},
		},
	})
}

func TestSnapshot_Resolve(t *testing.T) {
	s := newSnapshot()
	tests := []struct {
		name     string
		kind     domain.CatalogKind
		input    string
		wantID   int64
		wantTier catalog.Tier
	}{
		{"code match", domain.CatalogRequestTypes, "cot", 10, catalog.TierCode},
		{"name match case-insensitive", domain.CatalogRequestTypes, "  licitación ", 12, catalog.TierName},
		{"input contains entry name", domain.CatalogTechnologies, "FOTOVOLTAICA SOLAR", 1, catalog.TierFuzzy},
		{"entry name contains input", domain.CatalogTechnologies, "almacen", 2, catalog.TierFuzzy},
		{"fuzzy tie resolved by load order", domain.CatalogStatuses, "PROCESO", 20, catalog.TierFuzzy},
		{"not found", domain.CatalogTechnologies, "EOLICA", 0, catalog.TierNone},
		{"blank input", domain.CatalogTechnologies, "   ", 0, catalog.TierNone},
		{"catalog not loaded", domain.CatalogCloseReasons, "PRECIO", 0, catalog.TierNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, tier := s.Resolve(tt.kind, tt.input)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantTier, tier)
		})
	}
}

func TestSnapshot_CodeBeatsName(t *testing.T) {
	s := catalog.NewSnapshot(map[domain.CatalogKind][]domain.CatalogEntry{
		domain.CatalogRequestTypes: {
			{ID: 1, Name: "FV", Code: "X"},
			{ID: 2, Name: "Otro", Code: "FV"},
		},
	})
	id, tier := s.Resolve(domain.CatalogRequestTypes, "fv")
	assert.Equal(t, int64(2), id)
	assert.Equal(t, catalog.TierCode, tier)
}

func TestSnapshot_Size(t *testing.T) {
	s := newSnapshot()
	assert.Equal(t, 2, s.Size(domain.CatalogTechnologies))
	assert.Equal(t, 3, s.Size(domain.CatalogRequestTypes))
	assert.Equal(t, 0, s.Size(domain.CatalogCloseReasons))
}

func TestUserDirectory_Resolve(t *testing.T) {
	ana := uuid.New()
	jose := uuid.New()
	system := uuid.New()
	d := catalog.NewUserDirectory([]domain.DirectoryUser{
		{ID: ana, Name: "Ana María Gutiérrez"},
		{ID: jose, Name: "José Luis Ramírez Soto"},
	}, system)

	tests := []struct {
		name     string
		input    string
		wantID   uuid.UUID
		wantTier catalog.Tier
	}{
		{"exact with accents", "Ana María Gutiérrez", ana, catalog.TierName},
		{"exact without accents", "ANA MARIA GUTIERREZ", ana, catalog.TierName},
		{"substring", "jose luis ramirez", jose, catalog.TierFuzzy},
		{"surname", "Ing. Pedro Ramirez", jose, catalog.TierLastName},
		{"short words ignored", "Ana Gil", system, catalog.TierFallback},
		{"unknown", "Carlos Fuentes", system, catalog.TierFallback},
		{"blank", "  ", uuid.Nil, catalog.TierNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, tier := d.Resolve(tt.input)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantTier, tier)
		})
	}
	assert.Equal(t, system, d.System())
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "code", catalog.TierCode.String())
	assert.Equal(t, "fuzzy", catalog.TierFuzzy.String())
	assert.Equal(t, "none", catalog.TierNone.String())
}
