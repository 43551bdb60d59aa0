package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"helpdesk_assistant/pkg"
	"helpdesk_assistant/src/model"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeChat struct {
	reply   model.ChatReply
	turns   []model.ChatTurn
	history []model.Exchange
	err     error
}

func (f *fakeChat) SendMessage(_ context.Context, turn model.ChatTurn) model.ChatReply {
	f.turns = append(f.turns, turn)
	return f.reply
}

func (f *fakeChat) History(context.Context, string) ([]model.Exchange, error) {
	return f.history, f.err
}

func doRequest(t *testing.T, s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestSend(t *testing.T) {
	chat := &fakeChat{reply: model.ChatReply{ResponseText: "Reinicie.", AudioPayload: "UklGRg=="}}
	s := New(":0", chat)

	w := doRequest(t, s, http.MethodPost, "/api/chat/send",
		`{"message":"vpn caiu","generateAudio":true}`,
		map[string]string{"X-User-Role": "Admin", "X-User-Id": "u7"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp pkg.SendMessageResponse
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, pkg.SendMessageResponse{Response: "Reinicie.", AudioBase64: "UklGRg=="}, resp)

	require.Len(t, chat.turns, 1)
	assert.Equal(t, model.ChatTurn{UserID: "u7", Message: "vpn caiu", Role: model.RoleAdmin, WantsAudio: true}, chat.turns[0])
}

func TestSend_DefaultsAndOmittedAudio(t *testing.T) {
	chat := &fakeChat{reply: model.ChatReply{ResponseText: "Até mais", IsConversationOver: true}}
	s := New(":0", chat)

	w := doRequest(t, s, http.MethodPost, "/api/chat/send", `{"message":"obrigado"}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "audioBase64")
	assert.Contains(t, w.Body.String(), `"isResolved":true`)
	assert.Equal(t, model.ChatTurn{UserID: "anonymous", Message: "obrigado", Role: model.RoleCustomer}, chat.turns[0])
}

func TestSend_RejectsBadInput(t *testing.T) {
	chat := &fakeChat{}
	s := New(":0", chat)

	for _, body := range []string{`{"message":"   "}`, `{}`, `not json`} {
		w := doRequest(t, s, http.MethodPost, "/api/chat/send", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Empty(t, chat.turns)
}

func TestStatus(t *testing.T) {
	s := New(":0", &fakeChat{})
	fixed := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	w := doRequest(t, s, http.MethodGet, "/api/chat/status", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp pkg.StatusResponse
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "online", resp.Status)
	assert.True(t, resp.Timestamp.Equal(fixed))
}

func TestHistory(t *testing.T) {
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	chat := &fakeChat{history: []model.Exchange{{Message: "oi", Response: "olá", Resolved: false, CreatedAt: at}}}
	s := New(":0", chat)

	w := doRequest(t, s, http.MethodGet, "/api/chat/history", "", map[string]string{"X-User-Id": "u1"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp pkg.HistoryResponse
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.UserID)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "olá", resp.Messages[0].Response)
}

func TestHistory_StoreFailure(t *testing.T) {
	s := New(":0", &fakeChat{err: errors.New("redis down")})

	w := doRequest(t, s, http.MethodGet, "/api/chat/history", "", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "redis down")
}
