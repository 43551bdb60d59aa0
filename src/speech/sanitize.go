package speech

import "strings"

// MaxSpeechRunes caps the text handed to any speech backend
const MaxSpeechRunes = 1000

var sanitizer = strings.NewReplacer(
	`"`, "",
	`'`, "",
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
)

// Sanitize strips quotes, flattens line breaks and truncates long text to
// MaxSpeechRunes runes followed by "...".
func Sanitize(text string) string {
	clean := strings.TrimSpace(sanitizer.Replace(text))

	runes := []rune(clean)
	if len(runes) > MaxSpeechRunes {
		return string(runes[:MaxSpeechRunes]) + "..."
	}
	return clean
}
