package completion

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
)

const contentPath = "choices.0.message.content"

// ExtractContent pulls the answer text out of a chat completion body. It
// first walks the generic document to choices[0].message.content and, if
// that path is missing or not a string, decodes the body into the typed
// response and reads the same field from there.
func ExtractContent(body []byte) (string, error) {
	if text, ok := probeContent(body); ok {
		return text, nil
	}
	return decodeContent(body)
}

func probeContent(body []byte) (string, bool) {
	if !gjson.ValidBytes(body) {
		return "", false
	}

	res := gjson.GetBytes(body, contentPath)
	if !res.Exists() || res.Type != gjson.String {
		return "", false
	}

	text := strings.TrimSpace(res.String())
	return text, text != ""
}

func decodeContent(body []byte) (string, error) {
	var resp chatCompletionResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyContent
	}

	choice := resp.Choices[0]
	if choice.Message == nil {
		return "", ErrEmptyContent
	}

	text := strings.TrimSpace(contentText(choice.Message.Content))
	if text == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}

// contentText flattens string content or a list of {"type":"text","text":...} parts
func contentText(content any) string {
	switch v := content.(type) {
	case string:
		return v
	case []any:
		var sb strings.Builder
		for _, part := range v {
			switch p := part.(type) {
			case string:
				sb.WriteString(p)
			case map[string]any:
				if t, ok := p["text"].(string); ok {
					sb.WriteString(t)
				}
			}
		}
		return sb.String()
	}
	return ""
}
