package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fuelinnovation/line-autoreply/internal/config"
	apperrors "github.com/fuelinnovation/line-autoreply/internal/errors"
	"github.com/fuelinnovation/line-autoreply/internal/model"
	"github.com/fuelinnovation/line-autoreply/internal/repository"
	"github.com/fuelinnovation/line-autoreply/internal/util"
)

// GreetingMemory caches display names for an hour and throttles the full
// welcome text to once per minute per user.
type GreetingMemory struct {
	repo     repository.GreetingRepository
	profiles ProfileLookup
	ttl      time.Duration
	throttle time.Duration
	now      func() time.Time
}

func NewGreetingMemory(repo repository.GreetingRepository, profiles ProfileLookup) *GreetingMemory {
	return &GreetingMemory{
		repo:     repo,
		profiles: profiles,
		ttl:      config.NameCacheTTL,
		throttle: config.GreetingThrottle,
		now:      time.Now,
	}
}

// ResolveName returns the cached name while fresh, otherwise asks the
// platform. A failed lookup yields the placeholder and is not cached.
func (m *GreetingMemory) ResolveName(ctx context.Context, userID string) string {
	now := m.now()
	entry, ok := m.repo.Find(userID)
	if ok && !entry.CachedAt.IsZero() && now.Sub(entry.CachedAt) < m.ttl {
		return entry.Name
	}

	name, err := m.profiles.DisplayName(ctx, userID)
	if err != nil {
		log.Warn().
			Err(apperrors.ProfileLookup(util.MaskUserID(userID), err)).
			Msg("using placeholder name")
		return placeholderName
	}
	if name == "" {
		name = placeholderName
	}

	m.repo.Save(userID, model.GreetingEntry{
		Name:      name,
		CachedAt:  now,
		LastGreet: entry.LastGreet,
	})
	return name
}

// CanGreetFully reports whether the full welcome text may be sent now and,
// if so, records the greeting.
func (m *GreetingMemory) CanGreetFully(userID string) bool {
	now := m.now()
	entry, _ := m.repo.Find(userID)
	if !entry.LastGreet.IsZero() && now.Sub(entry.LastGreet) <= m.throttle {
		return false
	}

	entry.LastGreet = now
	m.repo.Save(userID, entry)
	return true
}
