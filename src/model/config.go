package model

import "time"

// ----------------------------------------------------
// ================ Config ================
// LogConfig holds configuration for the global logger
type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	Format     string `envconfig:"LOG_FORMAT" default:"json"`
	Output     string `envconfig:"LOG_OUTPUT" default:"stdout"`
	FilePath   string `envconfig:"LOG_FILE_PATH" default:"logs/assistant.log"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"rfc3339"`
}

// CompletionConfig holds configuration for the completion endpoint
type CompletionConfig struct {
	APIKey      string        `envconfig:"GROQ_API_KEY" required:"true"`
	BaseURL     string        `envconfig:"COMPLETION_BASE_URL" default:"https://api.groq.com/openai/v1"`
	Model       string        `envconfig:"COMPLETION_MODEL" default:"meta-llama/llama-4-scout-17b-16e-instruct"`
	Provider    string        `envconfig:"COMPLETION_PROVIDER" default:"http"`
	Temperature float64       `envconfig:"COMPLETION_TEMPERATURE" default:"0.7"`
	MaxTokens   int           `envconfig:"COMPLETION_MAX_TOKENS" default:"500"`
	Timeout     time.Duration `envconfig:"COMPLETION_TIMEOUT" default:"30s"`
}

// KnowledgeConfig points at the question/answer source
type KnowledgeConfig struct {
	Path string `envconfig:"KNOWLEDGE_PATH" default:"knowledgebase.csv"`
}

// SpeechConfig selects the synthesis strategy
type SpeechConfig struct {
	Mode   string `envconfig:"SPEECH_MODE" default:"auto"` // auto, native, portable
	Engine string `envconfig:"SPEECH_ENGINE" default:"espeak-ng"`
}

// ConversationConfig holds transcript storage settings
type ConversationConfig struct {
	RedisURL string        `envconfig:"REDIS_URL"`
	TTL      time.Duration `envconfig:"TRANSCRIPT_TTL" default:"24h"`
	MaxTurns int           `envconfig:"TRANSCRIPT_MAX_TURNS" default:"50"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Addr                string `envconfig:"HTTP_ADDR" default:":8080"`
	AssistantConfigPath string `envconfig:"ASSISTANT_CONFIG_PATH" default:"config.yaml"`
}
