package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"helpdesk_assistant/src/conversation"
	"helpdesk_assistant/src/knowledge"
	"helpdesk_assistant/src/llm/completion"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of config.yaml
type YAMLConfig struct {
	Assistant AssistantConfig `yaml:"assistant"`
}

// AssistantConfig holds the conversation policy overrides
type AssistantConfig struct {
	RelevanceThreshold float64  `yaml:"relevance_threshold"`
	ClosingPhrases     []string `yaml:"closing_phrases"`
	ClosingMessage     string   `yaml:"closing_message"`
	FallbackMessage    string   `yaml:"fallback_message"`
	SystemPrompt       string   `yaml:"system_prompt"`
}

// Defaults returns the built-in assistant settings
func Defaults() *YAMLConfig {
	return &YAMLConfig{
		Assistant: AssistantConfig{
			RelevanceThreshold: knowledge.DefaultRelevanceThreshold,
			ClosingPhrases:     append([]string(nil), conversation.DefaultClosingPhrases...),
			ClosingMessage:     conversation.DefaultClosingMessage,
			FallbackMessage:    completion.DefaultFallback,
			SystemPrompt:       completion.DefaultSystemPrompt,
		},
	}
}

// LoadConfig loads configuration from config.yaml. A missing file yields
// Defaults; keys left out of the file keep their default values.
func LoadConfig(filepath string) (*YAMLConfig, error) {
	config := Defaults()

	data, err := os.ReadFile(filepath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var overrides YAMLConfig
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}

	config.merge(overrides.Assistant)
	return config, nil
}

func (c *YAMLConfig) merge(o AssistantConfig) {
	if o.RelevanceThreshold > 0 {
		c.Assistant.RelevanceThreshold = o.RelevanceThreshold
	}
	if len(o.ClosingPhrases) > 0 {
		c.Assistant.ClosingPhrases = o.ClosingPhrases
	}
	if o.ClosingMessage != "" {
		c.Assistant.ClosingMessage = o.ClosingMessage
	}
	if o.FallbackMessage != "" {
		c.Assistant.FallbackMessage = o.FallbackMessage
	}
	if o.SystemPrompt != "" {
		c.Assistant.SystemPrompt = o.SystemPrompt
	}
}

// BuildPolicy creates the conversation policy from YAML config
func BuildPolicy(c *YAMLConfig) *conversation.Policy {
	return conversation.NewPolicy(c.Assistant.ClosingPhrases, c.Assistant.ClosingMessage)
}

// BuildPrompt creates the completion prompt from YAML config
func BuildPrompt(c *YAMLConfig) *completion.Prompt {
	return completion.NewPrompt(c.Assistant.SystemPrompt)
}
