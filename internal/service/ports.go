package service

import (
	"context"

	"github.com/fuelinnovation/line-autoreply/internal/model"
)

// ReplySink delivers exactly one reply for a single-use reply token.
type ReplySink interface {
	Reply(ctx context.Context, replyToken string, reply *model.Reply) error
}

// ProfileLookup resolves a user's display name on the messaging platform.
type ProfileLookup interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// AdminNotifier pushes a short notice to the business admin account.
type AdminNotifier interface {
	Notify(ctx context.Context, text string) error
}
