package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/fuelinnovation/line-autoreply/internal/errors"
	"github.com/fuelinnovation/line-autoreply/internal/model"
	"github.com/fuelinnovation/line-autoreply/internal/repository"
	"github.com/fuelinnovation/line-autoreply/internal/service"
)

type mockRouter struct {
	mock.Mock
}

func (m *mockRouter) Route(ctx context.Context, event model.Event) (*model.Reply, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reply), args.Error(1)
}

type mockReplySink struct {
	mock.Mock
}

func (m *mockReplySink) Reply(ctx context.Context, replyToken string, reply *model.Reply) error {
	args := m.Called(ctx, replyToken, reply)
	return args.Error(0)
}

// recordingSink collects replies by token.
type recordingSink struct {
	mu      sync.Mutex
	replies map[string]*model.Reply
}

func (s *recordingSink) Reply(_ context.Context, replyToken string, reply *model.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replies == nil {
		s.replies = make(map[string]*model.Reply)
	}
	s.replies[replyToken] = reply
	return nil
}

func textEventJSON(userID, replyToken, text string) string {
	return `{"type":"message","mode":"active","timestamp":1700000000000,"webhookEventId":"` + replyToken + `",` +
		`"deliveryContext":{"isRedelivery":false},"replyToken":"` + replyToken + `",` +
		`"source":{"type":"user","userId":"` + userID + `"},` +
		`"message":{"id":"m-` + replyToken + `","type":"text","quoteToken":"q","text":"` + text + `"}}`
}

func callbackJSON(events ...string) string {
	return `{"destination":"Ubot","events":[` + strings.Join(events, ",") + `]}`
}

func postWebhook(h *WebhookHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)
	return rec
}

func TestWebhook_InvalidBody(t *testing.T) {
	h := NewWebhookHandler(new(mockRouter), new(mockReplySink))

	rec := postWebhook(h, `{"events":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), string(apperrors.ErrCodeInvalidInput))
}

func TestWebhook_EmptyBatch(t *testing.T) {
	h := NewWebhookHandler(new(mockRouter), new(mockReplySink))

	rec := postWebhook(h, callbackJSON())

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Events)
}

func TestWebhook_ReplyFailureDoesNotFailBatch(t *testing.T) {
	router := new(mockRouter)
	sink := new(mockReplySink)

	okReply := model.NewTextReply("ok")
	badReply := model.NewTextReply("bad")
	router.On("Route", mock.Anything, model.TextMessageEvent{UserID: "U1", ReplyToken: "rt1", Text: "a"}).Return(okReply, nil)
	router.On("Route", mock.Anything, model.TextMessageEvent{UserID: "U2", ReplyToken: "rt2", Text: "b"}).Return(badReply, nil)
	router.On("Route", mock.Anything, model.TextMessageEvent{UserID: "U3", ReplyToken: "rt3", Text: "c"}).Return(nil, errors.New("boom"))
	sink.On("Reply", mock.Anything, "rt1", okReply).Return(nil)
	sink.On("Reply", mock.Anything, "rt2", badReply).Return(errors.New("invalid reply token"))

	h := NewWebhookHandler(router, sink)
	rec := postWebhook(h, callbackJSON(
		textEventJSON("U1", "rt1", "a"),
		textEventJSON("U2", "rt2", "b"),
		textEventJSON("U3", "rt3", "c"),
	))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 3)

	assert.True(t, resp.Events[0].Replied)
	assert.Empty(t, resp.Events[0].Error)

	assert.False(t, resp.Events[1].Replied)
	assert.Equal(t, string(apperrors.ErrCodeReplyFailed), resp.Events[1].Error)

	assert.False(t, resp.Events[2].Replied)
	assert.Equal(t, string(apperrors.ErrCodeInternal), resp.Events[2].Error)

	router.AssertExpectations(t)
	sink.AssertExpectations(t)
}

func TestWebhook_NilReplyIsNotSent(t *testing.T) {
	router := new(mockRouter)
	sink := new(mockReplySink)
	router.On("Route", mock.Anything, mock.Anything).Return(nil, nil)

	h := NewWebhookHandler(router, sink)
	rec := postWebhook(h, callbackJSON(textEventJSON("U1", "rt1", "x")))

	assert.Equal(t, http.StatusOK, rec.Code)
	sink.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhook_EndToEnd(t *testing.T) {
	greetings := service.NewGreetingMemory(repository.NewMemoryGreetingRepository(), staticProfiles{})
	router, err := service.NewRouter(service.RouterConfig{
		FAQ:       service.NewFAQMatcher(nil),
		Greetings: greetings,
		Calc:      service.NewCalculatorFlow(repository.NewMemoryCalcSessionRepository()),
		Recorder:  service.NewInteractionRecorder(nil),
	})
	require.NoError(t, err)

	sink := &recordingSink{}
	h := NewWebhookHandler(router, sink)

	follow := `{"type":"follow","mode":"active","timestamp":1700000000000,"webhookEventId":"f1",` +
		`"deliveryContext":{"isRedelivery":false},"replyToken":"rt-follow",` +
		`"source":{"type":"user","userId":"U9"},"follow":{"isUnblocked":false}}`

	rec := postWebhook(h, callbackJSON(follow, textEventJSON("U1", "rt-calc", "คำนวณความประหยัด")))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postWebhook(h, callbackJSON(textEventJSON("U1", "rt-price", "33")))
	require.Equal(t, http.StatusOK, rec.Code)
	router.Wait()

	require.Contains(t, sink.replies, "rt-follow")
	assert.Equal(t, model.ReplyKindCard, sink.replies["rt-follow"].Kind)
	assert.Contains(t, sink.replies["rt-calc"].Text, "ราคาน้ำมัน")
	assert.Contains(t, sink.replies["rt-price"].Text, "ส่วนลด")
}

type staticProfiles struct{}

func (staticProfiles) DisplayName(context.Context, string) (string, error) {
	return "Somchai", nil
}

func TestBannerAndHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Banner(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fuel Innovation LINE Bot")

	rec = httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
