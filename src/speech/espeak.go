package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

const (
	// words per minute; espeak's own default
	normalRate = 175
	// espeak amplitude range is 0-200
	maxAmplitude = 200
)

// EspeakEngine renders WAV audio through an espeak / espeak-ng binary
type EspeakEngine struct {
	binary    string
	voice     string
	rate      int
	amplitude int
}

// NewEspeakEngine pins voice, rate and volume for the lifetime of the engine.
// An empty voice leaves the engine default in place.
func NewEspeakEngine(binary, voice string) *EspeakEngine {
	return &EspeakEngine{
		binary:    binary,
		voice:     voice,
		rate:      normalRate,
		amplitude: maxAmplitude,
	}
}

func (e *EspeakEngine) args() []string {
	args := []string{
		"--stdout",
		"--stdin",
		"-s", strconv.Itoa(e.rate),
		"-a", strconv.Itoa(e.amplitude),
	}
	if e.voice != "" {
		args = append(args, "-v", e.voice)
	}
	return args
}

// Render runs the engine with text on stdin and copies the WAV output to w
func (e *EspeakEngine) Render(ctx context.Context, text string, w io.Writer) error {
	if e.binary == "" {
		return ErrEngineUnavailable
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, e.args()...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = w
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", e.binary, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
