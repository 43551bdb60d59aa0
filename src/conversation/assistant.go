package conversation

import (
	"context"
	"time"

	"helpdesk_assistant/src/llm/completion"
	"helpdesk_assistant/src/logger"
	"helpdesk_assistant/src/model"
	"helpdesk_assistant/src/speech"
)

// Completer produces reply text. Implementations never fail; they return a
// fallback text instead.
type Completer interface {
	Complete(ctx context.Context, content string) string
}

// Retriever finds a knowledge answer for a message, or "" when nothing is relevant
type Retriever interface {
	FindBestAnswer(message string) string
}

// Assistant answers chat turns. It is stateless across calls apart from the
// transcript and safe for concurrent use.
type Assistant struct {
	policy     *Policy
	retriever  Retriever
	completer  Completer
	speech     speech.Synthesizer
	transcript Transcript
	fallback   string
	now        func() time.Time
}

// Option configures an Assistant
type Option func(*Assistant)

func WithTranscript(t Transcript) Option {
	return func(a *Assistant) {
		if t != nil {
			a.transcript = t
		}
	}
}

func WithFallback(text string) Option {
	return func(a *Assistant) {
		if text != "" {
			a.fallback = text
		}
	}
}

func NewAssistant(policy *Policy, retriever Retriever, completer Completer, synth speech.Synthesizer, opts ...Option) *Assistant {
	if policy == nil {
		policy = NewPolicy(nil, "")
	}
	a := &Assistant{
		policy:     policy,
		retriever:  retriever,
		completer:  completer,
		speech:     synth,
		transcript: NopTranscript{},
		fallback:   completion.DefaultFallback,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SendMessage answers one chat turn. It never panics and ResponseText is
// never empty.
func (a *Assistant) SendMessage(ctx context.Context, turn model.ChatTurn) (reply model.ChatReply) {
	log := logger.Component("assistant")
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("user_id", turn.UserID).Msg("SendMessage panicked")
			reply = model.ChatReply{ResponseText: a.fallback}
		}
	}()

	var spoken string
	if a.policy.ShouldEndConversation(turn.Message) {
		reply = model.ChatReply{
			ResponseText:       a.policy.ClosingMessage(),
			IsConversationOver: true,
		}
		spoken = a.policy.SpokenClosingMessage()
	} else {
		reply = model.ChatReply{ResponseText: a.answer(ctx, turn)}
	}

	if reply.ResponseText == "" {
		reply.ResponseText = a.fallback
	}
	if spoken == "" {
		spoken = reply.ResponseText
	}

	if turn.WantsAudio && a.speech != nil {
		if payload, ok := a.speech.Synthesize(ctx, spoken); ok {
			reply.AudioPayload = payload
		}
	}

	a.record(ctx, turn, reply)

	log.Info().
		Str("user_id", turn.UserID).
		Str("role", string(turn.Role)).
		Int("message_length", len(turn.Message)).
		Bool("resolved", reply.IsConversationOver).
		Bool("audio", reply.HasAudio()).
		Dur("elapsed", time.Since(start)).
		Msg("Message handled")

	return reply
}

// History returns the recorded exchanges of a user
func (a *Assistant) History(ctx context.Context, userID string) ([]model.Exchange, error) {
	return a.transcript.History(ctx, userID)
}

func (a *Assistant) answer(ctx context.Context, turn model.ChatTurn) string {
	if a.completer == nil {
		return a.fallback
	}

	if a.policy.IsPrivileged(turn.Role) {
		return a.completer.Complete(ctx, turn.Message)
	}

	var knowledge string
	if a.retriever != nil {
		knowledge = a.retriever.FindBestAnswer(turn.Message)
	}
	logger.Debug().Bool("knowledge_hit", knowledge != "").Msg("Knowledge lookup finished")

	return a.completer.Complete(ctx, buildContext(turn.Message, knowledge))
}

func (a *Assistant) record(ctx context.Context, turn model.ChatTurn, reply model.ChatReply) {
	err := a.transcript.Append(ctx, turn.UserID, model.Exchange{
		Message:   turn.Message,
		Response:  reply.ResponseText,
		Role:      turn.Role,
		Resolved:  reply.IsConversationOver,
		CreatedAt: a.now().UTC(),
	})
	if err != nil {
		logger.Warn().Err(err).Str("user_id", turn.UserID).Msg("Failed to record exchange")
	}
}
