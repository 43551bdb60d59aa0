package src

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresAPIKey(t *testing.T) {
	// Setenv registers the restore; the variable is then removed for the test
	t.Setenv("GROQ_API_KEY", "")
	require.NoError(t, os.Unsetenv("GROQ_API_KEY"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "gsk_test", cfg.CompletionConfig.APIKey)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.CompletionConfig.BaseURL)
	assert.Equal(t, "http", cfg.CompletionConfig.Provider)
	assert.Equal(t, 0.7, cfg.CompletionConfig.Temperature)
	assert.Equal(t, 500, cfg.CompletionConfig.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.CompletionConfig.Timeout)
	assert.Equal(t, "info", cfg.LogConfig.Level)
	assert.Equal(t, "knowledgebase.csv", cfg.KnowledgeConfig.Path)
	assert.Equal(t, "auto", cfg.SpeechConfig.Mode)
	assert.Equal(t, 24*time.Hour, cfg.ConversationConfig.TTL)
	assert.Equal(t, ":8080", cfg.ServerConfig.Addr)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("COMPLETION_TIMEOUT", "5s")
	t.Setenv("SPEECH_MODE", "portable")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogConfig.Level)
	assert.Equal(t, 5*time.Second, cfg.CompletionConfig.Timeout)
	assert.Equal(t, "portable", cfg.SpeechConfig.Mode)
	assert.Equal(t, "redis://localhost:6379/1", cfg.ConversationConfig.RedisURL)
}

func TestLoadConfig_IgnoresBareLogNames(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("LEVEL", "debug")
	t.Setenv("FORMAT", "console")
	t.Setenv("OUTPUT", "stderr")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogConfig.Level)
	assert.Equal(t, "json", cfg.LogConfig.Format)
	assert.Equal(t, "stdout", cfg.LogConfig.Output)
}
