package model

import "encoding/json"

type ReplyKind string

const (
	ReplyKindText ReplyKind = "text"
	ReplyKindCard ReplyKind = "card"
)

// Reply is the single outbound payload produced for one event.
type Reply struct {
	Kind ReplyKind
	Text string
	Card *Card
}

// Card is a structured menu payload. Contents holds the platform card JSON.
type Card struct {
	AltText  string
	Contents json.RawMessage
}

func NewTextReply(text string) *Reply {
	return &Reply{Kind: ReplyKindText, Text: text}
}

func NewCardReply(altText string, contents json.RawMessage) *Reply {
	return &Reply{
		Kind: ReplyKindCard,
		Card: &Card{AltText: altText, Contents: contents},
	}
}
