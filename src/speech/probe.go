package speech

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"helpdesk_assistant/src/logger"
)

const (
	voiceLanguage = "pt-br"
	// female variant hint, appended to the selected voice
	femaleVariant = "+f3"
	probeTimeout  = 5 * time.Second
)

// Capability is what the host offers for native speech. It is computed once
// at startup and shared.
type Capability struct {
	Native bool
	Engine string
	Binary string
	Voice  string
}

var (
	lookPath   = exec.LookPath
	listVoices = func(ctx context.Context, binary string) ([]byte, error) {
		return exec.CommandContext(ctx, binary, "--voices=pt").Output()
	}
)

// Probe looks the engine up on PATH and picks a pt-BR voice. When no such
// voice is listed the engine default voice is used.
func Probe(ctx context.Context, engine string) Capability {
	log := logger.Component("speech")
	capability := Capability{Engine: engine}

	if engine == "" {
		return capability
	}

	binary, err := lookPath(engine)
	if err != nil {
		log.Info().Str("engine", engine).Msg("Speech engine not found on PATH")
		return capability
	}
	capability.Native = true
	capability.Binary = binary

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := listVoices(ctx, binary)
	if err != nil {
		log.Warn().Err(err).Str("engine", engine).Msg("Failed to list voices, using engine default")
		return capability
	}

	voice := findVoice(out, voiceLanguage)
	if voice == "" {
		log.Warn().Str("engine", engine).Str("language", voiceLanguage).Msg("No matching voice, using engine default")
		return capability
	}
	capability.Voice = voice + femaleVariant

	log.Debug().Str("engine", engine).Str("voice", capability.Voice).Msg("Speech engine probed")
	return capability
}

// findVoice scans espeak's voice table for a language code. The table looks like
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  pt-br           --/M      Portuguese_(Brazil) roa/pt-BR
func findVoice(table []byte, language string) string {
	scanner := bufio.NewScanner(bytes.NewReader(table))
	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		if strings.EqualFold(fields[1], language) {
			return fields[1]
		}
	}
	return ""
}
