package knowledge

import (
	"strings"

	"helpdesk_assistant/src/model"
)

// DefaultRelevanceThreshold is the minimum overlap ratio (exclusive) for a
// knowledge entry to count as answering the question.
const DefaultRelevanceThreshold = 0.1

// Scorer picks the knowledge entry whose question shares the most words with
// the user message.
type Scorer struct {
	base      *Base
	threshold float64
}

// NewScorer binds a scorer to a loaded base. A non-positive threshold falls
// back to DefaultRelevanceThreshold.
func NewScorer(base *Base, threshold float64) *Scorer {
	if threshold <= 0 {
		threshold = DefaultRelevanceThreshold
	}
	return &Scorer{base: base, threshold: threshold}
}

// FindBestAnswer returns the answer of the best matching entry of the bound
// base, or "" when nothing scores above the threshold.
func (s *Scorer) FindBestAnswer(message string) string {
	return FindBestAnswer(message, s.base.Entries(), s.threshold)
}

// Threshold is the configured cut-off
func (s *Scorer) Threshold() float64 {
	return s.threshold
}

// FindBestAnswer scores every entry and returns the answer of the one with
// the strictly highest score, earliest entry winning ties. The answer is
// returned only when that score exceeds threshold.
func FindBestAnswer(message string, entries []model.KnowledgeEntry, threshold float64) string {
	userTokens := Tokenize(message)
	if len(userTokens) == 0 || len(entries) == 0 {
		return ""
	}

	bestIdx := -1
	bestScore := 0.0
	for i, entry := range entries {
		score := Score(userTokens, entry.Question)
		if bestIdx == -1 || score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	if bestScore > threshold {
		return entries[bestIdx].Answer
	}
	return ""
}

// Score is the number of distinct user tokens found in the question divided
// by the number of user tokens.
func Score(userTokens []string, question string) float64 {
	if len(userTokens) == 0 {
		return 0
	}

	questionSet := make(map[string]struct{})
	for _, tok := range Tokenize(question) {
		questionSet[tok] = struct{}{}
	}

	seen := make(map[string]struct{}, len(userTokens))
	common := 0
	for _, tok := range userTokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if _, ok := questionSet[tok]; ok {
			common++
		}
	}

	return float64(common) / float64(len(userTokens))
}

// Tokenize lowercases s and splits it on whitespace
func Tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}
