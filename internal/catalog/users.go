package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"enertika/internal/domain"
	"enertika/internal/logger"
	"enertika/internal/textnorm"
)

const minSurnameLen = 4

type userKey struct {
	id  uuid.UUID
	key string
}

// UserDirectory resolves free-text person names to user ids. Unresolvable
// names fall back to the system identity.
type UserDirectory struct {
	ordered []userKey
	byKey   map[string]uuid.UUID
	system  uuid.UUID
	log     zerolog.Logger
}

// NewUserDirectory builds a directory over the active users.
func NewUserDirectory(users []domain.DirectoryUser, system uuid.UUID) *UserDirectory {
	d := &UserDirectory{
		byKey:  make(map[string]uuid.UUID, len(users)),
		system: system,
		log:    logger.WithComponent("user_directory"),
	}
	for idx := range users {
		key := textnorm.Fold(users[idx].Name)
		if key == "" {
			continue
		}
		if _, dup := d.byKey[key]; dup {
			continue
		}
		d.byKey[key] = users[idx].ID
		d.ordered = append(d.ordered, userKey{id: users[idx].ID, key: key})
	}
	return d
}

// System returns the fallback identity.
func (d *UserDirectory) System() uuid.UUID {
	return d.system
}

// Resolve looks a name up by exact folded match, then substring in either
// direction, then by any word longer than three letters (usually a surname).
// Blank input resolves to uuid.Nil with TierNone.
func (d *UserDirectory) Resolve(name string) (uuid.UUID, Tier) {
	key := textnorm.Fold(name)
	if key == "" {
		return uuid.Nil, TierNone
	}
	if id, ok := d.byKey[key]; ok {
		return id, TierName
	}
	for _, u := range d.ordered {
		if strings.Contains(u.key, key) || strings.Contains(key, u.key) {
			d.log.Warn().Str("input", name).Str("matched", u.key).Msg("fuzzy user match")
			return u.id, TierFuzzy
		}
	}
	for _, word := range strings.Fields(key) {
		if len([]rune(word)) < minSurnameLen {
			continue
		}
		for _, u := range d.ordered {
			if strings.Contains(u.key, word) {
				d.log.Warn().Str("input", name).Str("matched", u.key).Msg("user matched by surname")
				return u.id, TierLastName
			}
		}
	}
	d.log.Warn().Str("input", name).Msg("user not found, using system identity")
	return d.system, TierFallback
}
