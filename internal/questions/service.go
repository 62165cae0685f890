package questions

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"pdfqa-backend/internal/documents"
	"pdfqa-backend/internal/llm"
	"pdfqa-backend/internal/shared/telemetry"
)

// MaxQuestionLength caps questions at 1000 characters.
const MaxQuestionLength = 1000

var (
	// ErrInvalidInput marks a question rejected by validation.
	ErrInvalidInput = errors.New("invalid question")
	// ErrUpstream marks a failure of the external answer-generation call.
	ErrUpstream = errors.New("answer generation failed")
)

// Answer is the result of asking a question about a document.
type Answer struct {
	Answer    string
	Document  string
	Timestamp time.Time
}

// Service contains business logic for answering questions about documents.
type Service struct {
	DocRepo documents.Repo
	LLM     llm.Client
}

// Ask looks up the document, records the access and forwards the stored text
// plus the question to the answer-generation provider.
//
// last_accessed is deliberately touched before the upstream call, recording
// attempted access even when no answer is delivered. A touch failure is
// logged and does not block the answer.
func (s *Service) Ask(ctx context.Context, documentID, question string) (Answer, error) {
	if documentID == "" {
		return Answer{}, fmt.Errorf("%w: document_id is required", ErrInvalidInput)
	}
	if question == "" {
		return Answer{}, fmt.Errorf("%w: question must not be empty", ErrInvalidInput)
	}
	if utf8.RuneCountInString(question) > MaxQuestionLength {
		return Answer{}, fmt.Errorf("%w: question exceeds %d characters", ErrInvalidInput, MaxQuestionLength)
	}

	doc, err := s.DocRepo.GetByID(ctx, documentID)
	if err != nil {
		return Answer{}, err
	}

	if err := s.DocRepo.TouchAccessed(ctx, documentID, time.Now().UTC()); err != nil {
		telemetry.Error("question.touch_failed", map[string]any{
			"document_id": documentID,
			"err":         err.Error(),
		})
	}

	if s.LLM == nil {
		return Answer{}, fmt.Errorf("%w: answer generation is not configured", ErrUpstream)
	}

	text, err := s.LLM.Answer(ctx, llm.AnswerInput{
		Question: question,
		Context:  doc.TextContent,
	})
	if err != nil {
		return Answer{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return Answer{
		Answer:    text,
		Document:  doc.Filename,
		Timestamp: time.Now().UTC(),
	}, nil
}
