package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fuelinnovation/line-autoreply/internal/model"
)

type mockProfileLookup struct {
	mock.Mock
}

func (m *mockProfileLookup) DisplayName(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type mockAdminNotifier struct {
	mock.Mock
}

func (m *mockAdminNotifier) Notify(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

type mockInteractionRepo struct {
	mock.Mock
}

func (m *mockInteractionRepo) Append(ctx context.Context, entry model.Interaction) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// fakeClock is a settable time source for throttles and TTLs.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
