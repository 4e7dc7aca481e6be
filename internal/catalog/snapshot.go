// Package catalog resolves free-text labels against reference catalogs held in memory.
package catalog

import (
	"strings"

	"github.com/rs/zerolog"

	"enertika/internal/domain"
	"enertika/internal/logger"
)

// Tier reports which lookup strategy produced a resolution.
type Tier int

const (
	TierNone Tier = iota
	TierCode
	TierName
	TierFuzzy
	TierLastName
	TierFallback
)

func (t Tier) String() string {
	switch t {
	case TierCode:
		return "code"
	case TierName:
		return "name"
	case TierFuzzy:
		return "fuzzy"
	case TierLastName:
		return "last_name"
	case TierFallback:
		return "fallback"
	default:
		return "none"
	}
}

type entry struct {
	id   int64
	name string
}

type table struct {
	ordered []entry
	byCode  map[string]int64
	byName  map[string]int64
}

// Snapshot is a read-only view of the reference catalogs, built once per run.
// It is immutable after construction and safe for concurrent access.
type Snapshot struct {
	tables map[domain.CatalogKind]*table
	log    zerolog.Logger
}

// NewSnapshot builds a Snapshot. Entry order within each catalog is kept and
// decides which entry wins a fuzzy tie.
func NewSnapshot(catalogs map[domain.CatalogKind][]domain.CatalogEntry) *Snapshot {
	s := &Snapshot{
		tables: make(map[domain.CatalogKind]*table, len(catalogs)),
		log:    logger.WithComponent("catalog"),
	}
	for kind, entries := range catalogs {
		t := &table{
			byCode: make(map[string]int64),
			byName: make(map[string]int64, len(entries)),
		}
		for idx := range entries {
			e := &entries[idx]
			name := strings.ToUpper(strings.TrimSpace(e.Name))
			if code := strings.ToUpper(strings.TrimSpace(e.Code)); code != "" {
				if _, dup := t.byCode[code]; !dup {
					t.byCode[code] = e.ID
				}
			}
			if name == "" {
				continue
			}
			if _, dup := t.byName[name]; !dup {
				t.byName[name] = e.ID
				t.ordered = append(t.ordered, entry{id: e.ID, name: name})
			}
		}
		s.tables[kind] = t
	}
	return s
}

// Size returns the number of named entries loaded for a catalog.
func (s *Snapshot) Size(kind domain.CatalogKind) int {
	if t, ok := s.tables[kind]; ok {
		return len(t.ordered)
	}
	return 0
}

// Resolve maps raw text to a catalog id: exact code, then exact uppercase
// name, then the first entry whose name contains the input or is contained
// in it. TierNone means the label could not be resolved.
func (s *Snapshot) Resolve(kind domain.CatalogKind, raw string) (int64, Tier) {
	t, ok := s.tables[kind]
	value := strings.ToUpper(strings.TrimSpace(raw))
	if !ok || value == "" {
		return 0, TierNone
	}

	if id, ok := t.byCode[value]; ok {
		return id, TierCode
	}
	if id, ok := t.byName[value]; ok {
		return id, TierName
	}
	for _, e := range t.ordered {
		if strings.Contains(e.name, value) || strings.Contains(value, e.name) {
			s.log.Warn().
				Str("catalog", string(kind)).
				Str("input", raw).
				Str("matched", e.name).
				Msg("fuzzy catalog match")
			return e.id, TierFuzzy
		}
	}

	s.log.Warn().Str("catalog", string(kind)).Str("input", raw).Msg("catalog value not found")
	return 0, TierNone
}
