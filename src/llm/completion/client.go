package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"helpdesk_assistant/src/logger"
	"helpdesk_assistant/src/model"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const chatCompletionsPath = "/chat/completions"

// Client talks to an OpenAI-compatible chat completion endpoint. One Client
// is shared by all requests; per-call state lives on the resty request.
type Client struct {
	http        *resty.Client
	model       string
	temperature float64
	maxTokens   int
	prompt      *Prompt
	fallback    string
}

// NewClient creates a completion client. Every call is attempted once.
func NewClient(cfg model.CompletionConfig, p *Prompt, fallback string) *Client {
	if p == nil {
		p = NewPrompt("")
	}
	if fallback == "" {
		fallback = DefaultFallback
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetLogger(restyLogger{})

	return &Client{
		http:        httpClient,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		prompt:      p,
		fallback:    fallback,
	}
}

// Complete returns the model answer for content, or the fallback text when
// anything goes wrong. It never returns an error.
func (c *Client) Complete(ctx context.Context, content string) string {
	res := c.Do(ctx, Request{
		Content:     content,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if !res.OK() {
		return c.fallback
	}
	return res.Text
}

// Do performs one completion call and reports the outcome
func (c *Client) Do(ctx context.Context, req Request) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("completion panic: %v", r)}
		}
		var ev *zerolog.Event
		if res.Err != nil {
			ev = logger.Error().Err(res.Err)
		} else {
			ev = logger.Info()
		}
		ev.Str("model", c.model).
			Int("content_length", len(req.Content)).
			Dur("elapsed", time.Since(start)).
			Msg("Completion call finished")
	}()

	body, err := c.buildBody(ctx, req)
	if err != nil {
		return Result{Err: err}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(chatCompletionsPath)
	if err != nil {
		return Result{Err: fmt.Errorf("calling completion endpoint: %w", err)}
	}

	if !resp.IsSuccess() {
		logger.Warn().
			Int("status", resp.StatusCode()).
			Str("upstream_body", truncate(resp.String(), 512)).
			Msg("Completion endpoint rejected request")
		return Result{Err: fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode())}
	}

	text, err := ExtractContent(resp.Body())
	if err != nil {
		return Result{Err: err}
	}
	return Result{Text: text}
}

func (c *Client) buildBody(ctx context.Context, req Request) ([]byte, error) {
	msgs, err := c.prompt.Messages(ctx, req.Content)
	if err != nil {
		return nil, err
	}

	wire := chatCompletionRequest{
		Model:       c.model,
		Messages:    make([]chatMessage, 0, len(msgs)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	for _, m := range msgs {
		wire.Messages = append(wire.Messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	data, err := sonic.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	return data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// restyLogger routes resty diagnostics into the global logger
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) {
	logger.Error().Str("component", "resty").Msgf(format, v...)
}

func (restyLogger) Warnf(format string, v ...any) {
	logger.Warn().Str("component", "resty").Msgf(format, v...)
}

func (restyLogger) Debugf(format string, v ...any) {
	logger.Debug().Str("component", "resty").Msgf(format, v...)
}
