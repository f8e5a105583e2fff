package ports

import (
	"context"

	"github.com/kirillkom/ai-interview-coach/internal/core/domain"
)

// InterviewService is the inbound contract for the interview state machine.
// The HTTP adapter and the test harness drive it identically.
type InterviewService interface {
	// Start runs extract -> match skills -> generate questions and moves a
	// fresh session to in-progress. An empty skill match aborts before any
	// model call.
	Start(ctx context.Context, filename string, data []byte) (*domain.Session, error)

	// Get returns a snapshot of the session.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// SubmitAnswer records the current text for a 1-based question index and
	// synchronously recomputes its score. Trimmed answers of three characters
	// or fewer are recorded but skipped, not scored.
	SubmitAnswer(ctx context.Context, id string, questionIndex int, answer string) (domain.ScoreResult, error)

	// Restart unconditionally clears the session back to its unstarted state.
	Restart(ctx context.Context, id string) (*domain.Session, error)
}
