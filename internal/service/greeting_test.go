package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fuelinnovation/line-autoreply/internal/repository"
)

func newTestGreetingMemory(profiles ProfileLookup) (*GreetingMemory, repository.GreetingRepository, *fakeClock) {
	repo := repository.NewMemoryGreetingRepository()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	m := NewGreetingMemory(repo, profiles)
	m.now = clock.Now
	return m, repo, clock
}

func TestGreetingMemory_ResolveName(t *testing.T) {
	ctx := context.Background()

	t.Run("caches the name for an hour", func(t *testing.T) {
		profiles := new(mockProfileLookup)
		profiles.On("DisplayName", mock.Anything, "U1").Return("Somchai", nil).Once()
		m, _, clock := newTestGreetingMemory(profiles)

		assert.Equal(t, "Somchai", m.ResolveName(ctx, "U1"))
		clock.Advance(59 * time.Minute)
		assert.Equal(t, "Somchai", m.ResolveName(ctx, "U1"))
		profiles.AssertNumberOfCalls(t, "DisplayName", 1)
	})

	t.Run("refreshes after the ttl", func(t *testing.T) {
		profiles := new(mockProfileLookup)
		profiles.On("DisplayName", mock.Anything, "U1").Return("Somchai", nil).Once()
		profiles.On("DisplayName", mock.Anything, "U1").Return("Somchai K.", nil).Once()
		m, _, clock := newTestGreetingMemory(profiles)

		assert.Equal(t, "Somchai", m.ResolveName(ctx, "U1"))
		clock.Advance(time.Hour)
		assert.Equal(t, "Somchai K.", m.ResolveName(ctx, "U1"))
		profiles.AssertExpectations(t)
	})

	t.Run("lookup failure yields placeholder and is not cached", func(t *testing.T) {
		profiles := new(mockProfileLookup)
		profiles.On("DisplayName", mock.Anything, "U1").Return("", errors.New("boom")).Once()
		profiles.On("DisplayName", mock.Anything, "U1").Return("Somchai", nil).Once()
		m, repo, _ := newTestGreetingMemory(profiles)

		assert.Equal(t, placeholderName, m.ResolveName(ctx, "U1"))
		_, cached := repo.Find("U1")
		assert.False(t, cached)

		assert.Equal(t, "Somchai", m.ResolveName(ctx, "U1"))
		profiles.AssertExpectations(t)
	})

	t.Run("empty display name uses placeholder", func(t *testing.T) {
		profiles := new(mockProfileLookup)
		profiles.On("DisplayName", mock.Anything, "U1").Return("", nil).Once()
		m, _, _ := newTestGreetingMemory(profiles)

		assert.Equal(t, placeholderName, m.ResolveName(ctx, "U1"))
		assert.Equal(t, placeholderName, m.ResolveName(ctx, "U1"))
		profiles.AssertNumberOfCalls(t, "DisplayName", 1)
	})

	t.Run("refresh keeps the last greeting time", func(t *testing.T) {
		profiles := new(mockProfileLookup)
		profiles.On("DisplayName", mock.Anything, "U1").Return("Somchai", nil)
		m, repo, clock := newTestGreetingMemory(profiles)

		m.ResolveName(ctx, "U1")
		require.True(t, m.CanGreetFully("U1"))
		greetedAt := clock.Now()

		clock.Advance(2 * time.Hour)
		m.ResolveName(ctx, "U1")

		entry, ok := repo.Find("U1")
		require.True(t, ok)
		assert.Equal(t, greetedAt, entry.LastGreet)
		assert.Equal(t, clock.Now(), entry.CachedAt)
	})
}

func TestGreetingMemory_CanGreetFully(t *testing.T) {
	m, _, clock := newTestGreetingMemory(new(mockProfileLookup))

	assert.True(t, m.CanGreetFully("U1"), "first greeting is full")

	clock.Advance(30 * time.Second)
	assert.False(t, m.CanGreetFully("U1"))

	clock.Advance(30 * time.Second)
	assert.False(t, m.CanGreetFully("U1"), "exactly 60s since the last full greeting is still throttled")

	clock.Advance(time.Second)
	assert.True(t, m.CanGreetFully("U1"))

	assert.True(t, m.CanGreetFully("U2"), "throttle is per user")
}

func TestGreetingMemory_ThrottleOnlyAdvancesOnFullGreeting(t *testing.T) {
	m, _, clock := newTestGreetingMemory(new(mockProfileLookup))

	require.True(t, m.CanGreetFully("U1"))
	clock.Advance(45 * time.Second)
	require.False(t, m.CanGreetFully("U1"))

	// A short greeting at +45s must not push the window forward.
	clock.Advance(16 * time.Second)
	assert.True(t, m.CanGreetFully("U1"))
}
