package conversation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"helpdesk_assistant/src/llm/completion"
	"helpdesk_assistant/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyCompleter struct {
	mu       sync.Mutex
	answer   string
	contents []string
}

func (s *spyCompleter) Complete(_ context.Context, content string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contents = append(s.contents, content)
	return s.answer
}

func (s *spyCompleter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contents)
}

type spyRetriever struct {
	answer string
	calls  int
}

func (s *spyRetriever) FindBestAnswer(string) string {
	s.calls++
	return s.answer
}

type panicRetriever struct{}

func (panicRetriever) FindBestAnswer(string) string { panic("index corrupted") }

type stubSynthesizer struct {
	payload string
	ok      bool
	calls   int
	text    string
}

func (s *stubSynthesizer) Synthesize(_ context.Context, text string) (string, bool) {
	s.calls++
	s.text = text
	return s.payload, s.ok
}

type memoryTranscript struct {
	exchanges []model.Exchange
	err       error
}

func (m *memoryTranscript) Append(_ context.Context, _ string, ex model.Exchange) error {
	if m.err != nil {
		return m.err
	}
	m.exchanges = append(m.exchanges, ex)
	return nil
}

func (m *memoryTranscript) History(context.Context, string) ([]model.Exchange, error) {
	return m.exchanges, m.err
}

func TestSendMessage_ClosingPhraseSkipsCompletion(t *testing.T) {
	completer := &spyCompleter{answer: "should not be used"}
	retriever := &spyRetriever{answer: "kb"}
	a := NewAssistant(nil, retriever, completer, nil)

	reply := a.SendMessage(context.Background(), model.ChatTurn{Message: "obrigado, já resolveu", Role: model.RoleCustomer})

	assert.True(t, reply.IsConversationOver)
	assert.Equal(t, DefaultClosingMessage, reply.ResponseText)
	assert.Equal(t, 0, completer.calls())
	assert.Equal(t, 0, retriever.calls)
	assert.False(t, reply.HasAudio())
}

func TestSendMessage_AdminSkipsKnowledgeLookup(t *testing.T) {
	completer := &spyCompleter{answer: "resposta"}
	retriever := &spyRetriever{answer: "kb"}
	a := NewAssistant(nil, retriever, completer, nil)

	reply := a.SendMessage(context.Background(), model.ChatTurn{Message: "status do servidor?", Role: model.RoleAdmin})

	assert.Equal(t, "resposta", reply.ResponseText)
	assert.False(t, reply.IsConversationOver)
	assert.Equal(t, 0, retriever.calls)
	require.Len(t, completer.contents, 1)
	assert.Equal(t, "status do servidor?", completer.contents[0])
}

func TestSendMessage_KnowledgeContext(t *testing.T) {
	t.Run("Should quote the knowledge answer on a hit", func(t *testing.T) {
		completer := &spyCompleter{answer: "ok"}
		a := NewAssistant(nil, &spyRetriever{answer: "Use o portal."}, completer, nil)

		a.SendMessage(context.Background(), model.ChatTurn{Message: "esqueci a senha", Role: model.RoleCustomer})

		require.Len(t, completer.contents, 1)
		assert.Equal(t,
			"Baseado na seguinte informação da knowledge base: Use o portal.\n\nPergunta do usuário: esqueci a senha",
			completer.contents[0])
	})

	t.Run("Should use generic framing on a miss", func(t *testing.T) {
		completer := &spyCompleter{answer: "ok"}
		a := NewAssistant(nil, &spyRetriever{}, completer, nil)

		a.SendMessage(context.Background(), model.ChatTurn{Message: "impressora travou", Role: model.RoleCustomer})

		require.Len(t, completer.contents, 1)
		assert.Equal(t,
			"Você é um assistente de suporte técnico. O usuário fez a seguinte pergunta que não está em nossa base de conhecimento: impressora travou",
			completer.contents[0])
	})
}

func TestSendMessage_Audio(t *testing.T) {
	t.Run("Should attach audio only when requested", func(t *testing.T) {
		synth := &stubSynthesizer{payload: "UklGRg==", ok: true}
		a := NewAssistant(nil, &spyRetriever{}, &spyCompleter{answer: "ok"}, synth)

		withAudio := a.SendMessage(context.Background(), model.ChatTurn{Message: "olá", WantsAudio: true})
		withoutAudio := a.SendMessage(context.Background(), model.ChatTurn{Message: "olá"})

		assert.Equal(t, "UklGRg==", withAudio.AudioPayload)
		assert.Empty(t, withoutAudio.AudioPayload)
		assert.Equal(t, 1, synth.calls)
	})

	t.Run("Should omit audio when synthesis fails", func(t *testing.T) {
		synth := &stubSynthesizer{ok: false}
		a := NewAssistant(nil, &spyRetriever{}, &spyCompleter{answer: "ok"}, synth)

		reply := a.SendMessage(context.Background(), model.ChatTurn{Message: "olá", WantsAudio: true})

		assert.Equal(t, "ok", reply.ResponseText)
		assert.False(t, reply.HasAudio())
	})

	t.Run("Should voice the closing message when requested", func(t *testing.T) {
		synth := &stubSynthesizer{payload: "audio", ok: true}
		a := NewAssistant(nil, &spyRetriever{}, &spyCompleter{}, synth)

		reply := a.SendMessage(context.Background(), model.ChatTurn{Message: "tudo bem, obrigado", WantsAudio: true})

		assert.True(t, reply.IsConversationOver)
		assert.Equal(t, "audio", reply.AudioPayload)
		assert.Equal(t, DefaultClosingMessage, reply.ResponseText)
		assert.Equal(t, "Ótimo! Fico feliz que consegui ajudar. Se precisar de mais alguma coisa, estarei por aqui!", synth.text)
	})
}

func TestSendMessage_UnreachableEndpointFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := completion.NewClient(model.CompletionConfig{APIKey: "k", BaseURL: url, Timeout: time.Second}, nil, "")
	a := NewAssistant(nil, &spyRetriever{}, client, nil)

	reply := a.SendMessage(context.Background(), model.ChatTurn{Message: "meu email não sincroniza"})

	assert.Equal(t, completion.DefaultFallback, reply.ResponseText)
	assert.False(t, reply.IsConversationOver)
}

func TestSendMessage_NeverEmpty(t *testing.T) {
	t.Run("Should replace empty completion with fallback", func(t *testing.T) {
		a := NewAssistant(nil, &spyRetriever{}, &spyCompleter{answer: ""}, nil, WithFallback("tente depois"))

		reply := a.SendMessage(context.Background(), model.ChatTurn{Message: "olá"})
		assert.Equal(t, "tente depois", reply.ResponseText)
	})

	t.Run("Should recover from a panicking collaborator", func(t *testing.T) {
		a := NewAssistant(nil, panicRetriever{}, &spyCompleter{answer: "ok"}, nil)

		var reply model.ChatReply
		assert.NotPanics(t, func() {
			reply = a.SendMessage(context.Background(), model.ChatTurn{Message: "olá"})
		})
		assert.Equal(t, completion.DefaultFallback, reply.ResponseText)
		assert.False(t, reply.IsConversationOver)
	})
}

func TestSendMessage_RecordsExchange(t *testing.T) {
	transcript := &memoryTranscript{}
	a := NewAssistant(nil, &spyRetriever{}, &spyCompleter{answer: "ok"}, nil, WithTranscript(transcript))
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return fixed }

	a.SendMessage(context.Background(), model.ChatTurn{UserID: "u1", Message: "olá", Role: model.RoleCustomer})
	a.SendMessage(context.Background(), model.ChatTurn{UserID: "u1", Message: "resolvido", Role: model.RoleCustomer})

	history, err := a.History(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.Exchange{Message: "olá", Response: "ok", Role: model.RoleCustomer, CreatedAt: fixed}, history[0])
	assert.True(t, history[1].Resolved)
}

func TestSendMessage_TranscriptFailureDoesNotAffectReply(t *testing.T) {
	a := NewAssistant(nil, &spyRetriever{}, &spyCompleter{answer: "ok"}, nil,
		WithTranscript(&memoryTranscript{err: errors.New("redis down")}))

	reply := a.SendMessage(context.Background(), model.ChatTurn{Message: "olá"})
	assert.Equal(t, "ok", reply.ResponseText)
}
