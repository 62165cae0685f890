package questions

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pdfqa-backend/internal/documents"
	"pdfqa-backend/internal/llm"
)

type recordingRepo struct {
	doc       documents.Document
	touchErr  error
	events    []string
	touchedAt time.Time
}

func (r *recordingRepo) Create(ctx context.Context, doc documents.Document) error {
	return nil
}

func (r *recordingRepo) GetByID(ctx context.Context, id string) (documents.Document, error) {
	if id != r.doc.ID {
		return documents.Document{}, documents.ErrNotFound
	}
	r.events = append(r.events, "get")
	return r.doc, nil
}

func (r *recordingRepo) TouchAccessed(ctx context.Context, id string, ts time.Time) error {
	r.events = append(r.events, "touch")
	if r.touchErr != nil {
		return r.touchErr
	}
	r.touchedAt = ts
	return nil
}

func (r *recordingRepo) List(ctx context.Context, limit, offset int) ([]documents.Document, error) {
	return nil, nil
}

type stubLLM struct {
	answer string
	err    error
	events *[]string
	input  llm.AnswerInput
}

func (s *stubLLM) Answer(ctx context.Context, input llm.AnswerInput) (string, error) {
	if s.events != nil {
		*s.events = append(*s.events, "llm")
	}
	s.input = input
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func seededRepo() *recordingRepo {
	now := time.Now().UTC().Add(-time.Hour)
	return &recordingRepo{
		doc: documents.Document{
			ID:           "doc-1",
			Filename:     "contract.pdf",
			TextContent:  "the term is 24 months",
			UploadDate:   now,
			LastAccessed: now,
		},
	}
}

func TestAskReturnsAnswerAndTouchesBeforeUpstreamCall(t *testing.T) {
	repo := seededRepo()
	client := &stubLLM{answer: "24 months", events: &repo.events}
	svc := &Service{DocRepo: repo, LLM: client}

	before := repo.doc.LastAccessed
	answer, err := svc.Ask(context.Background(), "doc-1", "How long is the term?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if answer.Answer != "24 months" {
		t.Fatalf("unexpected answer %q", answer.Answer)
	}
	if answer.Document != "contract.pdf" {
		t.Fatalf("expected originating filename, got %q", answer.Document)
	}
	if answer.Timestamp.IsZero() {
		t.Fatalf("expected timestamp set")
	}
	if client.input.Context != "the term is 24 months" {
		t.Fatalf("expected stored text forwarded, got %q", client.input.Context)
	}

	want := []string{"get", "touch", "llm"}
	if strings.Join(repo.events, ",") != strings.Join(want, ",") {
		t.Fatalf("expected order %v, got %v", want, repo.events)
	}
	if !repo.touchedAt.After(before) {
		t.Fatalf("expected last_accessed advanced past %v, got %v", before, repo.touchedAt)
	}
}

func TestAskUnknownDocument(t *testing.T) {
	svc := &Service{DocRepo: seededRepo(), LLM: &stubLLM{answer: "x"}}

	_, err := svc.Ask(context.Background(), "missing", "anything?")
	if !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAskValidatesQuestion(t *testing.T) {
	svc := &Service{DocRepo: seededRepo(), LLM: &stubLLM{answer: "x"}}

	tests := []struct {
		name       string
		documentID string
		question   string
	}{
		{name: "empty question", documentID: "doc-1", question: ""},
		{name: "oversized question", documentID: "doc-1", question: strings.Repeat("q", MaxQuestionLength+1)},
		{name: "missing document id", documentID: "", question: "ok?"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Ask(context.Background(), tt.documentID, tt.question); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAskQuestionAtMaxLengthAllowed(t *testing.T) {
	repo := seededRepo()
	svc := &Service{DocRepo: repo, LLM: &stubLLM{answer: "fine"}}

	if _, err := svc.Ask(context.Background(), "doc-1", strings.Repeat("q", MaxQuestionLength)); err != nil {
		t.Fatalf("Ask at limit: %v", err)
	}
}

func TestAskSurfacesUpstreamFailure(t *testing.T) {
	repo := seededRepo()
	svc := &Service{DocRepo: repo, LLM: &stubLLM{err: errors.New("rate limited")}}

	_, err := svc.Ask(context.Background(), "doc-1", "anything?")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected upstream message preserved, got %v", err)
	}
}

func TestAskTouchFailureDoesNotBlockAnswer(t *testing.T) {
	repo := seededRepo()
	repo.touchErr = errors.New("update failed")
	svc := &Service{DocRepo: repo, LLM: &stubLLM{answer: "still works"}}

	answer, err := svc.Ask(context.Background(), "doc-1", "anything?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer.Answer != "still works" {
		t.Fatalf("unexpected answer %q", answer.Answer)
	}
}

func TestAskWithoutConfiguredClient(t *testing.T) {
	svc := &Service{DocRepo: seededRepo(), LLM: nil}

	_, err := svc.Ask(context.Background(), "doc-1", "anything?")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
