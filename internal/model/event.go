package model

// Event is one inbound platform event. The concrete types below are the only
// implementations; the router switches over them exhaustively.
type Event interface {
	isEvent()
	GetUserID() string
	GetReplyToken() string
}

type FollowEvent struct {
	UserID     string
	ReplyToken string
}

type TextMessageEvent struct {
	UserID     string
	ReplyToken string
	Text       string
}

// OtherMessageEvent is a message with non-text content (sticker, image, ...).
type OtherMessageEvent struct {
	UserID      string
	ReplyToken  string
	ContentType string
}

func (FollowEvent) isEvent()       {}
func (TextMessageEvent) isEvent()  {}
func (OtherMessageEvent) isEvent() {}

func (e FollowEvent) GetUserID() string       { return e.UserID }
func (e TextMessageEvent) GetUserID() string  { return e.UserID }
func (e OtherMessageEvent) GetUserID() string { return e.UserID }

func (e FollowEvent) GetReplyToken() string       { return e.ReplyToken }
func (e TextMessageEvent) GetReplyToken() string  { return e.ReplyToken }
func (e OtherMessageEvent) GetReplyToken() string { return e.ReplyToken }

const UnknownUserID = "unknown"
