package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"sync"

	"helpdesk_assistant/src/logger"
)

// Engine renders speech audio for text into w
type Engine interface {
	Render(ctx context.Context, text string, w io.Writer) error
}

// NativeSynthesizer drives a host speech engine. The engine is configured
// once and is not safe for concurrent renders, so calls are serialized.
type NativeSynthesizer struct {
	mu     sync.Mutex
	engine Engine
}

func NewNativeSynthesizer(engine Engine) *NativeSynthesizer {
	return &NativeSynthesizer{engine: engine}
}

// Synthesize renders text into an in-memory buffer and returns it base64 encoded
func (n *NativeSynthesizer) Synthesize(ctx context.Context, text string) (payload string, ok bool) {
	log := logger.Component("speech")
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Speech engine panicked")
			payload, ok = "", false
		}
	}()

	clean := Sanitize(text)
	if clean == "" {
		return "", false
	}
	if n.engine == nil {
		log.Warn().Err(ErrEngineUnavailable).Msg("Native speech skipped")
		return "", false
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	var buf bytes.Buffer
	if err := n.engine.Render(ctx, clean, &buf); err != nil {
		log.Error().Err(err).Int("text_length", len(clean)).Msg("Speech synthesis failed")
		return "", false
	}
	if buf.Len() == 0 {
		log.Warn().Err(ErrEmptyAudio).Msg("Speech synthesis failed")
		return "", false
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), true
}
