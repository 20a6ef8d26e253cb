package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	apperrors "github.com/fuelinnovation/line-autoreply/internal/errors"
	"github.com/fuelinnovation/line-autoreply/internal/model"
	"github.com/fuelinnovation/line-autoreply/internal/repository"
)

const interactionWriteTimeout = 5 * time.Second

// InteractionRecorder logs every bot action and appends it to the
// interaction store in the background. Store failures are logged only.
type InteractionRecorder struct {
	repo repository.InteractionRepository
	now  func() time.Time
	wg   sync.WaitGroup
}

func NewInteractionRecorder(repo repository.InteractionRepository) *InteractionRecorder {
	return &InteractionRecorder{repo: repo, now: time.Now}
}

func (r *InteractionRecorder) Record(action model.Action, meta map[string]any) {
	entry := model.Interaction{
		ID:        uuid.NewString(),
		Action:    action,
		Timestamp: r.now(),
		Meta:      meta,
	}

	logEvent := log.Info().
		Str("interaction", string(action)).
		Str("interaction_id", entry.ID)
	for k, v := range meta {
		logEvent = addField(logEvent, k, v)
	}
	logEvent.Msg("bot interaction")

	if r.repo == nil {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), interactionWriteTimeout)
		defer cancel()

		if err := r.repo.Append(ctx, entry); err != nil {
			log.Warn().
				Err(apperrors.Storage(err)).
				Str("interaction", string(action)).
				Msg("failed to persist interaction")
		}
	}()
}

// Wait blocks until pending writes have finished.
func (r *InteractionRecorder) Wait() {
	r.wg.Wait()
}

func addField(e *zerolog.Event, key string, value any) *zerolog.Event {
	switch v := value.(type) {
	case string:
		return e.Str(key, v)
	case int:
		return e.Int(key, v)
	case int64:
		return e.Int64(key, v)
	case float64:
		return e.Float64(key, v)
	case bool:
		return e.Bool(key, v)
	default:
		return e.Interface(key, v)
	}
}
