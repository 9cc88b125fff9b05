package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/j-veylop/gig-worker-hub/internal/logger"
	"github.com/j-veylop/gig-worker-hub/internal/models"
)

// Journal records advisory calls. *db.DB satisfies it.
type Journal interface {
	InsertAdvisoryCall(call *models.AdvisoryCall) error
}

// Service wraps a Generator with the prompts and the failure convention.
// Its methods never return errors; failures come back as text starting
// with FailureMarker.
type Service struct {
	gen       Generator
	journal   Journal
	model     string
	sessionID string
	now       func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithJournal records every call in j.
func WithJournal(j Journal) ServiceOption {
	return func(s *Service) { s.journal = j }
}

// WithSessionID tags journal entries with the session identifier.
func WithSessionID(id string) ServiceOption {
	return func(s *Service) { s.sessionID = id }
}

// WithModel names the model in journal entries.
func WithModel(model string) ServiceOption {
	return func(s *Service) { s.model = model }
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService wraps gen.
func NewService(gen Generator, opts ...ServiceOption) *Service {
	s := &Service{
		gen:   gen,
		model: "unknown",
		now:   time.Now,
	}
	if m, ok := gen.(interface{ ModelID() string }); ok {
		s.model = m.ModelID()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend generates a performance report for rs.
func (s *Service) Recommend(ctx context.Context, rs *models.RecordSet) string {
	if rs.Empty() {
		return FailureMarker + " generating report: no data loaded"
	}

	prompt := RecommendationsPrompt(s.now(), rs)
	text, err := s.generate(ctx, models.AdvisoryRecommendations, prompt)
	if err != nil {
		return fmt.Sprintf("%s generating report: %v", FailureMarker, err)
	}
	return text
}

// Ask answers a free-form question.
func (s *Service) Ask(ctx context.Context, question string) string {
	text, err := s.generate(ctx, models.AdvisoryQuestion, QuestionPrompt(question))
	if err != nil {
		return fmt.Sprintf("%s generating response: %v", FailureMarker, err)
	}
	return text
}

func (s *Service) generate(ctx context.Context, kind models.AdvisoryKind, prompt string) (string, error) {
	start := s.now()
	text, err := s.gen.Generate(ctx, prompt)
	elapsed := s.now().Sub(start)

	call := &models.AdvisoryCall{
		Timestamp:     start,
		SessionID:     s.sessionID,
		Kind:          kind,
		Model:         s.model,
		PromptChars:   len(prompt),
		ResponseChars: len(text),
		DurationMs:    elapsed.Milliseconds(),
	}

	if err == nil && text == "" {
		err = fmt.Errorf("empty response from model")
	}
	if err != nil {
		call.Error = err.Error()
		logger.Error("advisory call failed", "kind", kind, "error", err)
	} else {
		logger.Info("advisory call completed", "kind", kind, "duration_ms", call.DurationMs)
	}

	if s.journal != nil {
		if jerr := s.journal.InsertAdvisoryCall(call); jerr != nil {
			logger.Warn("failed to journal advisory call", "error", jerr)
		}
	}

	return text, err
}
