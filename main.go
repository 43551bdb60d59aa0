package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"helpdesk_assistant/internal/config"
	"helpdesk_assistant/internal/server"
	"helpdesk_assistant/src"
	"helpdesk_assistant/src/conversation"
	"helpdesk_assistant/src/knowledge"
	"helpdesk_assistant/src/llm/completion"
	"helpdesk_assistant/src/logger"
	"helpdesk_assistant/src/model"
	"helpdesk_assistant/src/speech"
	"helpdesk_assistant/src/storage"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Error loading .env file")
	}

	cfg, err := src.LoadConfig()
	if err != nil {
		// logger is not configured yet; fall back to a console logger to report why
		fatalBeforeInit(err)
	}

	if err := logger.InitLogger(cfg.LogConfig); err != nil {
		fatalBeforeInit(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	yamlConfig, err := config.LoadConfig(cfg.ServerConfig.AssistantConfigPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.ServerConfig.AssistantConfigPath).Msg("Failed to load assistant config")
	}

	base := knowledge.Load(cfg.KnowledgeConfig.Path)
	scorer := knowledge.NewScorer(base, yamlConfig.Assistant.RelevanceThreshold)
	logger.Info().
		Str("path", base.Path()).
		Int("entries", base.Len()).
		Float64("threshold", scorer.Threshold()).
		Msg("Knowledge scorer ready")

	completer, err := newCompleter(ctx, cfg, yamlConfig)
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.CompletionConfig.Provider).Msg("Failed to create completer")
	}

	capability := speech.Probe(ctx, cfg.SpeechConfig.Engine)
	synth := speech.New(cfg.SpeechConfig.Mode, capability)

	opts := []conversation.Option{conversation.WithFallback(yamlConfig.Assistant.FallbackMessage)}
	if cfg.ConversationConfig.RedisURL != "" {
		store, err := storage.NewRedisStore(ctx, cfg.ConversationConfig.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("Transcript storage disabled")
		} else {
			defer store.Close()
			opts = append(opts, conversation.WithTranscript(
				conversation.NewRedisTranscript(store, cfg.ConversationConfig.TTL, cfg.ConversationConfig.MaxTurns),
			))
			logger.Info().Dur("ttl", cfg.ConversationConfig.TTL).Msg("Transcript storage enabled")
		}
	}

	assistant := conversation.NewAssistant(config.BuildPolicy(yamlConfig), scorer, completer, synth, opts...)

	srv := server.New(cfg.ServerConfig.Addr, assistant)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("HTTP server stopped")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func newCompleter(ctx context.Context, cfg *src.Config, yamlConfig *config.YAMLConfig) (conversation.Completer, error) {
	p := config.BuildPrompt(yamlConfig)
	fallback := yamlConfig.Assistant.FallbackMessage
	provider := strings.ToLower(cfg.CompletionConfig.Provider)

	if provider == "" || provider == completion.ProviderHTTP {
		logger.Info().
			Str("base_url", cfg.CompletionConfig.BaseURL).
			Str("model", cfg.CompletionConfig.Model).
			Msg("Using HTTP completion client")
		return completion.NewClient(cfg.CompletionConfig, p, fallback), nil
	}

	chat, err := completion.NewChatModel(ctx, cfg.CompletionConfig)
	if err != nil {
		return nil, err
	}
	mc, err := completion.NewModelCompleter(ctx, chat, provider, p, fallback)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("provider", provider).Str("model", cfg.CompletionConfig.Model).Msg("Using eino chat model")
	return mc, nil
}

func fatalBeforeInit(err error) {
	l, _ := logger.New(model.LogConfig{Level: "info", Format: "console", Output: "stderr"})
	l.Fatal().Err(err).Msg("Startup failed")
}
