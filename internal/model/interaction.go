package model

import (
	"encoding/json"
	"time"
)

type Action string

const (
	ActionFollow         Action = "follow"
	ActionCalcStep       Action = "calc-step"
	ActionFAQAutoReply   Action = "faq-auto-reply"
	ActionSmartGreeting  Action = "smart-greeting"
	ActionCalcStart      Action = "calc-start"
	ActionFAQPrompt      Action = "faq-prompt"
	ActionAboutLink      Action = "about-link"
	ActionSalesText      Action = "sales-text"
	ActionSpecText       Action = "spec-text"
	ActionQuoteText      Action = "quote-text"
	ActionGenericText    Action = "generic-text"
	ActionIgnoredMessage Action = "ignored-message"
)

// Interaction is one append-only record of what the bot did for an event.
type Interaction struct {
	ID        string         `db:"id" json:"id"`
	Action    Action         `db:"action" json:"action"`
	Timestamp time.Time      `db:"created_at" json:"timestamp"`
	Meta      map[string]any `db:"-" json:"-"`
}

// MarshalJSON flattens Meta next to action and timestamp.
func (i Interaction) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(i.Meta)+3)
	for k, v := range i.Meta {
		out[k] = v
	}
	if i.ID != "" {
		out["id"] = i.ID
	}
	out["action"] = i.Action
	out["timestamp"] = i.Timestamp.UTC().Format(time.RFC3339Nano)
	return json.Marshal(out)
}

func (i *Interaction) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	meta := make(map[string]any, len(raw))
	for k, v := range raw {
		switch k {
		case "id":
			i.ID, _ = v.(string)
		case "action":
			s, _ := v.(string)
			i.Action = Action(s)
		case "timestamp":
			s, _ := v.(string)
			if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
				i.Timestamp = ts
			}
		default:
			meta[k] = v
		}
	}
	i.Meta = meta
	return nil
}
