package speech

import (
	"context"
	"encoding/base64"

	"helpdesk_assistant/src/logger"

	"github.com/bytedance/sonic"
)

// Descriptor is what a client-side speech API needs to voice the reply
type Descriptor struct {
	Text   string  `json:"text"`
	Lang   string  `json:"lang"`
	Rate   float64 `json:"rate"`
	Pitch  float64 `json:"pitch"`
	Volume float64 `json:"volume"`
}

// PortableSynthesizer returns a base64 JSON Descriptor instead of audio
type PortableSynthesizer struct {
	lang string
}

func NewPortableSynthesizer() *PortableSynthesizer {
	return &PortableSynthesizer{lang: "pt-BR"}
}

func (p *PortableSynthesizer) Synthesize(_ context.Context, text string) (payload string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("Speech descriptor encoding panicked")
			payload, ok = "", false
		}
	}()

	clean := Sanitize(text)
	if clean == "" {
		return "", false
	}

	data, err := sonic.Marshal(Descriptor{
		Text:   clean,
		Lang:   p.lang,
		Rate:   1.0,
		Pitch:  1.0,
		Volume: 1.0,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to encode speech descriptor")
		return "", false
	}

	return base64.StdEncoding.EncodeToString(data), true
}
