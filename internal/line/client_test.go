package line

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/fuelinnovation/line-autoreply/internal/errors"
	"github.com/fuelinnovation/line-autoreply/internal/model"
)

type recordedCall struct {
	path string
	auth string
	body map[string]any
}

func newTestAPI(t *testing.T, status int, response string) (*httptest.Server, *[]recordedCall) {
	t.Helper()
	calls := &[]recordedCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := recordedCall{path: r.URL.Path, auth: r.Header.Get("Authorization")}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &call.body)
		}
		*calls = append(*calls, call)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestClient_ReplyText(t *testing.T) {
	srv, calls := newTestAPI(t, http.StatusOK, `{"sentMessages":[]}`)
	c, err := NewClient("token", "", WithEndpoint(srv.URL))
	require.NoError(t, err)

	err = c.Reply(context.Background(), "reply-token", model.NewTextReply("สวัสดีครับ"))
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/v2/bot/message/reply", call.path)
	assert.Equal(t, "Bearer token", call.auth)
	assert.Equal(t, "reply-token", call.body["replyToken"])

	messages := call.body["messages"].([]any)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "text", msg["type"])
	assert.Equal(t, "สวัสดีครับ", msg["text"])
}

func TestClient_ReplyNil(t *testing.T) {
	srv, calls := newTestAPI(t, http.StatusOK, `{}`)
	c, err := NewClient("token", "", WithEndpoint(srv.URL))
	require.NoError(t, err)

	require.NoError(t, c.Reply(context.Background(), "rt", nil))
	assert.Empty(t, *calls)
}

func TestClient_ReplyFailure(t *testing.T) {
	srv, _ := newTestAPI(t, http.StatusBadRequest, `{"message":"Invalid reply token"}`)
	c, err := NewClient("token", "", WithEndpoint(srv.URL))
	require.NoError(t, err)

	err = c.Reply(context.Background(), "expired", model.NewTextReply("hi"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeReplyFailed, apperrors.GetCode(err))
}

func TestClient_DisplayName(t *testing.T) {
	srv, calls := newTestAPI(t, http.StatusOK, `{"displayName":"Somchai","userId":"U123"}`)
	c, err := NewClient("token", "", WithEndpoint(srv.URL))
	require.NoError(t, err)

	name, err := c.DisplayName(context.Background(), "U123")
	require.NoError(t, err)
	assert.Equal(t, "Somchai", name)
	assert.Equal(t, "/v2/bot/profile/U123", (*calls)[0].path)
}

func TestClient_DisplayNameFailure(t *testing.T) {
	srv, _ := newTestAPI(t, http.StatusNotFound, `{"message":"Not found"}`)
	c, err := NewClient("token", "", WithEndpoint(srv.URL))
	require.NoError(t, err)

	_, err = c.DisplayName(context.Background(), "U123")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeProfileLookup, apperrors.GetCode(err))
}

func TestClient_Notify(t *testing.T) {
	t.Run("pushes to admin", func(t *testing.T) {
		srv, calls := newTestAPI(t, http.StatusOK, `{"sentMessages":[]}`)
		c, err := NewClient("token", "Uadmin", WithEndpoint(srv.URL))
		require.NoError(t, err)

		require.NoError(t, c.Notify(context.Background(), "lead"))
		require.Len(t, *calls, 1)
		assert.Equal(t, "/v2/bot/message/push", (*calls)[0].path)
		assert.Equal(t, "Uadmin", (*calls)[0].body["to"])
	})

	t.Run("no admin configured", func(t *testing.T) {
		srv, calls := newTestAPI(t, http.StatusOK, `{}`)
		c, err := NewClient("token", "", WithEndpoint(srv.URL))
		require.NoError(t, err)

		require.NoError(t, c.Notify(context.Background(), "lead"))
		assert.Empty(t, *calls)
	})
}

func TestToMessage(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		msg, err := ToMessage(model.NewTextReply("hello"))
		require.NoError(t, err)
		text, ok := msg.(*messaging_api.TextMessage)
		require.True(t, ok)
		assert.Equal(t, "hello", text.Text)
	})

	t.Run("card", func(t *testing.T) {
		contents := json.RawMessage(`{"type":"bubble","body":{"type":"box","layout":"vertical","contents":[{"type":"text","text":"hi"}]}}`)
		msg, err := ToMessage(model.NewCardReply("alt", contents))
		require.NoError(t, err)

		flex, ok := msg.(*messaging_api.FlexMessage)
		require.True(t, ok)
		assert.Equal(t, "alt", flex.AltText)

		out, err := json.Marshal(flex)
		require.NoError(t, err)
		assert.Contains(t, string(out), `"type":"flex"`)
		assert.Contains(t, string(out), `"type":"bubble"`)
	})

	t.Run("card without payload", func(t *testing.T) {
		_, err := ToMessage(&model.Reply{Kind: model.ReplyKindCard})
		assert.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := ToMessage(&model.Reply{Kind: "video"})
		assert.Error(t, err)
	})
}
