package completion

import "errors"

// DefaultFallback is returned to the user whenever a completion cannot be produced
const DefaultFallback = "Desculpe, ocorreu um erro ao processar sua pergunta. Por favor, tente novamente mais tarde."

var (
	ErrUpstreamStatus = errors.New("completion endpoint returned non-success status")
	ErrMalformedBody  = errors.New("completion response is not valid JSON")
	ErrEmptyContent   = errors.New("completion response has no content")
)

// Request is one outbound completion call
type Request struct {
	Content     string
	Temperature float64
	MaxTokens   int
}

// Result is the parsed answer of one completion call. Err is set when no
// usable text came back.
type Result struct {
	Text string
	Err  error
}

// OK reports whether the call produced text
func (r Result) OK() bool {
	return r.Err == nil && r.Text != ""
}

// ----------------------------------------------------
// ================ Wire format ================
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// chatCompletionResponse reads choices[0].message.content, which may be a
// string or a list of text parts.
type chatCompletionResponse struct {
	Choices []completionChoice `json:"choices"`
}

type completionChoice struct {
	Message *choiceMessage `json:"message"`
}

type choiceMessage struct {
	Content any `json:"content"`
}
