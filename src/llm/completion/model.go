package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"helpdesk_assistant/src/logger"
	"helpdesk_assistant/src/model"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/ollama/ollama/api"
)

// Provider names accepted by COMPLETION_PROVIDER
const (
	ProviderHTTP     = "http"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderOllama   = "ollama"
	ProviderArk      = "ark"
)

// ModelCompleter answers through an eino chat model. The prompt template
// and the model are compiled into one chain at construction. It keeps the
// same contract as Client: one attempt, fallback text on any failure.
type ModelCompleter struct {
	chain    compose.Runnable[map[string]any, *schema.Message]
	name     string
	prompt   *Prompt
	fallback string
}

// NewModelCompleter compiles prompt -> chat model into a runnable chain
func NewModelCompleter(ctx context.Context, chat einomodel.BaseChatModel, name string, p *Prompt, fallback string) (*ModelCompleter, error) {
	if p == nil {
		p = NewPrompt("")
	}
	if fallback == "" {
		fallback = DefaultFallback
	}

	chain, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(p.Template()).
		AppendChatModel(chat).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("error compiling completion chain: %w", err)
	}

	return &ModelCompleter{chain: chain, name: name, prompt: p, fallback: fallback}, nil
}

// Complete returns the model answer for content or the fallback text
func (m *ModelCompleter) Complete(ctx context.Context, content string) (answer string) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Str("provider", m.name).Msg("Chat model panicked")
			answer = m.fallback
		}
	}()

	out, err := m.chain.Invoke(ctx, m.prompt.Variables(content))
	if err != nil {
		logger.Error().Err(err).Str("provider", m.name).Dur("elapsed", time.Since(start)).Msg("Chat model call failed")
		return m.fallback
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		logger.Warn().Err(ErrEmptyContent).Str("provider", m.name).Msg("Chat model returned empty content")
		return m.fallback
	}

	logger.Info().Str("provider", m.name).Dur("elapsed", time.Since(start)).Msg("Chat model call finished")
	return strings.TrimSpace(out.Content)
}

// NewChatModel builds the eino chat model for cfg.Provider
func NewChatModel(ctx context.Context, cfg model.CompletionConfig) (einomodel.BaseChatModel, error) {
	maxTokens := cfg.MaxTokens
	temperature := float32(cfg.Temperature)

	var (
		chat einomodel.BaseChatModel
		err  error
	)
	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		var m *openai.ChatModel
		m, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
			Timeout:     cfg.Timeout,
		})
		chat = m
	case ProviderDeepSeek:
		var m *deepseek.ChatModel
		m, err = deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   maxTokens,
			Temperature: temperature,
			Timeout:     cfg.Timeout,
		})
		chat = m
	case ProviderOllama:
		var m *ollama.ChatModel
		m, err = ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
			Options: &api.Options{
				Temperature: temperature,
				NumPredict:  maxTokens,
			},
		})
		chat = m
	case ProviderArk:
		var m *ark.ChatModel
		m, err = ark.NewChatModel(ctx, &ark.ChatModelConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})
		chat = m
	default:
		return nil, fmt.Errorf("unsupported completion provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("error creating %s chat model: %w", cfg.Provider, err)
	}
	return chat, nil
}
