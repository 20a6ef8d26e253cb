package line

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	apperrors "github.com/fuelinnovation/line-autoreply/internal/errors"
	"github.com/fuelinnovation/line-autoreply/internal/model"
	"github.com/fuelinnovation/line-autoreply/internal/util"
)

// Client wraps the Messaging API for replies, profile lookups and pushes
// to the admin account.
type Client struct {
	api         *messaging_api.MessagingApiAPI
	adminUserID string
}

type ClientOption func(*clientOptions)

type clientOptions struct {
	endpoint string
	timeout  time.Duration
}

// WithEndpoint points the client at a different API host.
func WithEndpoint(endpoint string) ClientOption {
	return func(o *clientOptions) { o.endpoint = endpoint }
}

func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) { o.timeout = d }
}

func NewClient(channelToken, adminUserID string, opts ...ClientOption) (*Client, error) {
	o := clientOptions{timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	apiOpts := []messaging_api.MessagingApiAPIOption{
		messaging_api.WithHTTPClient(&http.Client{Timeout: o.timeout}),
	}
	if o.endpoint != "" {
		apiOpts = append(apiOpts, messaging_api.WithEndpoint(o.endpoint))
	}

	api, err := messaging_api.NewMessagingApiAPI(channelToken, apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("create messaging api client: %w", err)
	}
	return &Client{api: api, adminUserID: adminUserID}, nil
}

func (c *Client) Reply(ctx context.Context, replyToken string, reply *model.Reply) error {
	if reply == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return apperrors.ReplyFailed(err)
	}

	msg, err := ToMessage(reply)
	if err != nil {
		return apperrors.ReplyFailed(err)
	}

	_, err = c.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   []messaging_api.MessageInterface{msg},
	})
	if err != nil {
		return apperrors.ReplyFailed(err)
	}
	return nil
}

func (c *Client) DisplayName(ctx context.Context, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperrors.ProfileLookup(util.MaskUserID(userID), err)
	}

	profile, err := c.api.GetProfile(userID)
	if err != nil {
		return "", apperrors.ProfileLookup(util.MaskUserID(userID), err)
	}
	return profile.DisplayName, nil
}

// Notify pushes text to the admin account. Without an admin id it is a no-op.
func (c *Client) Notify(ctx context.Context, text string) error {
	if c.adminUserID == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return apperrors.External("LINE push", err)
	}

	_, err := c.api.PushMessage(&messaging_api.PushMessageRequest{
		To:       c.adminUserID,
		Messages: []messaging_api.MessageInterface{&messaging_api.TextMessage{Text: text}},
	}, "")
	if err != nil {
		return apperrors.External("LINE push", err)
	}
	return nil
}

// ToMessage converts a domain reply into a Messaging API message.
func ToMessage(reply *model.Reply) (messaging_api.MessageInterface, error) {
	switch reply.Kind {
	case model.ReplyKindText:
		return &messaging_api.TextMessage{Text: reply.Text}, nil

	case model.ReplyKindCard:
		if reply.Card == nil {
			return nil, fmt.Errorf("card reply without card")
		}
		container, err := messaging_api.UnmarshalFlexContainer(reply.Card.Contents)
		if err != nil {
			return nil, fmt.Errorf("decode flex container: %w", err)
		}
		return &messaging_api.FlexMessage{
			AltText:  reply.Card.AltText,
			Contents: container,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported reply kind %q", reply.Kind)
	}
}
