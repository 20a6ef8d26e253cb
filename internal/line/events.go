package line

import (
	"encoding/json"
	"fmt"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/rs/zerolog/log"

	"github.com/fuelinnovation/line-autoreply/internal/model"
)

// ParseCallback decodes a webhook body. The signature must already be
// verified.
func ParseCallback(body []byte) (*webhook.CallbackRequest, error) {
	var cb webhook.CallbackRequest
	if err := json.Unmarshal(body, &cb); err != nil {
		return nil, fmt.Errorf("decode webhook body: %w", err)
	}
	return &cb, nil
}

// ToEvents keeps the events the bot reacts to, in delivery order.
// Unsupported event types are dropped.
func ToEvents(cb *webhook.CallbackRequest) []model.Event {
	events := make([]model.Event, 0, len(cb.Events))
	for _, raw := range cb.Events {
		switch e := raw.(type) {
		case webhook.FollowEvent:
			events = append(events, model.FollowEvent{
				UserID:     sourceUserID(e.Source),
				ReplyToken: e.ReplyToken,
			})

		case webhook.MessageEvent:
			userID := sourceUserID(e.Source)
			if text, ok := e.Message.(webhook.TextMessageContent); ok {
				events = append(events, model.TextMessageEvent{
					UserID:     userID,
					ReplyToken: e.ReplyToken,
					Text:       text.Text,
				})
				continue
			}

			contentType := ""
			if e.Message != nil {
				contentType = e.Message.GetType()
			}
			events = append(events, model.OtherMessageEvent{
				UserID:      userID,
				ReplyToken:  e.ReplyToken,
				ContentType: contentType,
			})

		default:
			log.Debug().Str("type", raw.GetType()).Msg("skipping unsupported webhook event")
		}
	}
	return events
}

func sourceUserID(src webhook.SourceInterface) string {
	switch s := src.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	default:
		return ""
	}
}
