package repository

import (
	"slices"
	"sync"
	"time"

	"github.com/fuelinnovation/line-autoreply/internal/model"
)

type GreetingRepository interface {
	Find(userID string) (model.GreetingEntry, bool)
	Save(userID string, entry model.GreetingEntry)
	// DeleteIdle removes entries untouched since idleBefore, then evicts the
	// oldest by CachedAt until at most maxEntries remain (0 = no cap).
	DeleteIdle(idleBefore time.Time, maxEntries int) int64
	Count() int
}

type memoryGreetingRepo struct {
	mu      sync.RWMutex
	entries map[string]model.GreetingEntry
}

func NewMemoryGreetingRepository() GreetingRepository {
	return &memoryGreetingRepo{entries: make(map[string]model.GreetingEntry)}
}

func (r *memoryGreetingRepo) Find(userID string) (model.GreetingEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[userID]
	return e, ok
}

func (r *memoryGreetingRepo) Save(userID string, entry model.GreetingEntry) {
	r.mu.Lock()
	r.entries[userID] = entry
	r.mu.Unlock()
}

func (r *memoryGreetingRepo) DeleteIdle(idleBefore time.Time, maxEntries int) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, e := range r.entries {
		if lastTouched(e).Before(idleBefore) {
			delete(r.entries, id)
			removed++
		}
	}

	if maxEntries <= 0 || len(r.entries) <= maxEntries {
		return removed
	}

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		return r.entries[a].CachedAt.Compare(r.entries[b].CachedAt)
	})
	for _, id := range ids[:len(ids)-maxEntries] {
		delete(r.entries, id)
		removed++
	}
	return removed
}

func (r *memoryGreetingRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func lastTouched(e model.GreetingEntry) time.Time {
	if e.LastGreet.After(e.CachedAt) {
		return e.LastGreet
	}
	return e.CachedAt
}
