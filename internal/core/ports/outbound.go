package ports

import (
	"context"

	"github.com/kirillkom/ai-interview-coach/internal/core/domain"
)

// ResumeExtractor extracts plain text from an uploaded resume. An unsupported
// filename suffix yields ("", nil); callers must treat empty text the same as
// an unsupported format.
type ResumeExtractor interface {
	Extract(filename string, data []byte) (string, error)
}

// SkillMatcher scans resume text against the fixed skill vocabulary and
// returns the matched terms, title-cased, in vocabulary order.
type SkillMatcher interface {
	Match(text string) []string
}

// QuestionGenerator asks the language model for one question and ideal answer
// per skill. The two returned sequences are parallel and always equal length;
// both may be empty when the model output has no well-formed pairs.
type QuestionGenerator interface {
	Generate(ctx context.Context, skills []string) (questions, idealAnswers []string, err error)
}

// Embedder builds embedding vectors for answer texts.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// AnswerScorer computes the similarity score between a candidate answer and
// its ideal answer, in [0,1] rounded to two decimals.
type AnswerScorer interface {
	Score(ctx context.Context, candidate, ideal string) (float64, error)
}

// SessionStore holds live interview sessions for the process lifetime.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}
