package speech

import (
	"context"
	"errors"
	"strings"

	"helpdesk_assistant/src/logger"
)

// Synthesis modes accepted by SPEECH_MODE
const (
	ModeAuto     = "auto"
	ModeNative   = "native"
	ModePortable = "portable"
)

var (
	ErrEngineUnavailable = errors.New("speech engine unavailable")
	ErrEmptyAudio        = errors.New("speech engine produced no audio")
)

// Synthesizer turns reply text into a base64 audio payload. ok is false
// whenever no payload could be produced; callers then omit the audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (payload string, ok bool)
}

// New selects the synthesizer variant once, at startup. Native synthesis is
// used when the mode allows it and the probe found an engine; everything else
// falls back to the portable descriptor.
func New(mode string, capability Capability) Synthesizer {
	log := logger.Component("speech")

	switch strings.ToLower(mode) {
	case ModePortable:
		log.Info().Msg("Using portable speech descriptors")
		return NewPortableSynthesizer()
	case ModeNative:
		if !capability.Native {
			log.Warn().Str("engine", capability.Engine).Msg("Native speech requested but engine not found, using portable")
			return NewPortableSynthesizer()
		}
	default:
		if !capability.Native {
			log.Info().Msg("No native speech engine, using portable speech descriptors")
			return NewPortableSynthesizer()
		}
	}

	log.Info().
		Str("engine", capability.Engine).
		Str("voice", capability.Voice).
		Msg("Using native speech engine")
	return NewNativeSynthesizer(NewEspeakEngine(capability.Binary, capability.Voice))
}
