package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/fuelinnovation/line-autoreply/internal/errors"
	"github.com/fuelinnovation/line-autoreply/internal/httputil"
	"github.com/fuelinnovation/line-autoreply/internal/line"
	"github.com/fuelinnovation/line-autoreply/internal/model"
	"github.com/fuelinnovation/line-autoreply/internal/service"
	"github.com/fuelinnovation/line-autoreply/internal/util"
)

// maxConcurrentEvents bounds the fan-out for a single webhook batch.
const maxConcurrentEvents = 8

type EventRouter interface {
	Route(ctx context.Context, event model.Event) (*model.Reply, error)
}

type WebhookHandler struct {
	router EventRouter
	sink   service.ReplySink
}

func NewWebhookHandler(router EventRouter, sink service.ReplySink) *WebhookHandler {
	return &WebhookHandler{router: router, sink: sink}
}

type EventResult struct {
	Type    string `json:"type"`
	UserID  string `json:"userId,omitempty"`
	Replied bool   `json:"replied"`
	Error   string `json:"error,omitempty"`
}

type WebhookResponse struct {
	Status string        `json:"status"`
	Events []EventResult `json:"events"`
}

// Webhook handles one delivery from the platform. Events in the batch are
// processed concurrently; a failing event is logged and reported in the
// response without failing the batch.
func (h *WebhookHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("body", "unreadable request body"))
		return
	}

	cb, err := line.ParseCallback(body)
	if err != nil {
		log.Warn().Err(err).Msg("invalid LINE webhook request")
		httputil.WriteError(w, apperrors.InvalidInput("body", "malformed webhook payload"))
		return
	}

	events := line.ToEvents(cb)
	log.Info().
		Str("destination", cb.Destination).
		Int("received", len(cb.Events)).
		Int("handled", len(events)).
		Msg("received LINE webhook")

	results := make([]EventResult, len(events))
	ctx := r.Context()

	var g errgroup.Group
	g.SetLimit(maxConcurrentEvents)
	for i, ev := range events {
		i, ev := i, ev
		g.Go(func() error {
			results[i] = h.handleEvent(ctx, ev)
			return nil
		})
	}
	_ = g.Wait()

	writeJSON(w, http.StatusOK, WebhookResponse{Status: "ok", Events: results})
}

func (h *WebhookHandler) handleEvent(ctx context.Context, ev model.Event) EventResult {
	result := EventResult{Type: eventType(ev), UserID: util.MaskUserID(ev.GetUserID())}

	reply, err := h.router.Route(ctx, ev)
	if err != nil {
		log.Error().Err(err).Str("event", result.Type).Msg("failed to route event")
		result.Error = string(apperrors.GetCode(err))
		return result
	}
	if reply == nil {
		return result
	}

	if err := h.sink.Reply(ctx, ev.GetReplyToken(), reply); err != nil {
		appErr := apperrors.ReplyFailed(err)
		if existing, ok := apperrors.AsAppError(err); ok {
			appErr = existing
		}
		log.Error().
			Err(appErr).
			Str("event", result.Type).
			Str("userId", result.UserID).
			Msg("failed to send reply")
		result.Error = string(appErr.Code)
		return result
	}

	result.Replied = true
	return result
}

func eventType(ev model.Event) string {
	switch ev.(type) {
	case model.FollowEvent:
		return "follow"
	case model.TextMessageEvent:
		return "text"
	case model.OtherMessageEvent:
		return "other"
	default:
		return "unknown"
	}
}
