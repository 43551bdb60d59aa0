package conversation

import (
	"strings"
	"unicode"

	"helpdesk_assistant/src/model"
)

// DefaultClosingMessage is the fixed reply sent when the user signals the issue is settled
const DefaultClosingMessage = "Ótimo! Fico feliz que consegui ajudar. Se precisar de mais alguma coisa, estarei por aqui! 😊"

// DefaultClosingPhrases end a conversation when found anywhere in a message
var DefaultClosingPhrases = []string{
	"resolvido",
	"solucionado",
	"obrigado",
	"agradeço",
	"tudo bem",
	"até logo",
}

// Policy holds the pure conversation rules. It has no I/O and is safe for
// concurrent use once built.
type Policy struct {
	closingPhrases []string
	closingMessage string
	spokenClosing  string
}

// NewPolicy builds a policy. Empty arguments select the defaults.
func NewPolicy(closingPhrases []string, closingMessage string) *Policy {
	if len(closingPhrases) == 0 {
		closingPhrases = DefaultClosingPhrases
	}
	if closingMessage == "" {
		closingMessage = DefaultClosingMessage
	}

	phrases := make([]string, 0, len(closingPhrases))
	for _, p := range closingPhrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			phrases = append(phrases, p)
		}
	}

	return &Policy{
		closingPhrases: phrases,
		closingMessage: closingMessage,
		spokenClosing:  stripSymbols(closingMessage),
	}
}

// IsPrivileged reports whether role bypasses the knowledge lookup
func (p *Policy) IsPrivileged(role model.Role) bool {
	return role == model.RoleAdmin
}

// ShouldEndConversation is a case-insensitive substring match against the
// closing phrases, so "resolvido" also matches "não foi resolvido".
func (p *Policy) ShouldEndConversation(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range p.closingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// ClosingMessage is the reply used when ShouldEndConversation holds
func (p *Policy) ClosingMessage() string {
	return p.closingMessage
}

// ClosingPhrases returns a copy of the configured phrases
func (p *Policy) ClosingPhrases() []string {
	return append([]string(nil), p.closingPhrases...)
}

// SpokenClosingMessage is ClosingMessage without emoji, for speech synthesis
func (p *Policy) SpokenClosingMessage() string {
	return p.spokenClosing
}

// stripSymbols drops emoji and other pictographic symbols
func stripSymbols(s string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case unicode.Is(unicode.So, r), unicode.Is(unicode.Sk, r):
			return -1
		case r == '\u200d', r == '\ufe0f':
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(out), " ")
}
