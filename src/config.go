package src

import (
	"fmt"

	"helpdesk_assistant/src/model"

	"github.com/kelseyhightower/envconfig"
)

// Config is the environment driven process configuration. Nested keys are
// read by their full names (LOG_LEVEL, GROQ_API_KEY, REDIS_URL, ...).
type Config struct {
	LogConfig          model.LogConfig          `envconfig:"LOG"`
	CompletionConfig   model.CompletionConfig   `envconfig:"COMPLETION"`
	KnowledgeConfig    model.KnowledgeConfig    `envconfig:"KNOWLEDGE"`
	SpeechConfig       model.SpeechConfig       `envconfig:"SPEECH"`
	ConversationConfig model.ConversationConfig `envconfig:"CONVERSATION"`
	ServerConfig       model.ServerConfig       `envconfig:"SERVER"`
}

func LoadConfig() (*Config, error) {
	var config Config
	err := envconfig.Process("", &config)
	if err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}

	return &config, nil
}
