package domain

// RuleSection is one paragraph of the rules document, addressed by its
// bracketed heading when it has one.
type RuleSection struct {
	ID      string
	Section string
	Text    string
}

// ScoredSection is a RuleSection ranked against a question.
type ScoredSection struct {
	RuleSection
	Score float64
}

type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}
