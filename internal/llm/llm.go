package llm

import "context"

// Client abstracts the external answer-generation provider.
type Client interface {
	Answer(ctx context.Context, input AnswerInput) (string, error)
}

// AnswerInput captures the inputs for a single-turn question over a document.
type AnswerInput struct {
	Question string
	Context  string
}
