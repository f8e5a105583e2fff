package domain

import "time"

type SessionState string

const (
	StateNotStarted SessionState = "not_started"
	StateInProgress SessionState = "in_progress"
)

// Answer is the latest submitted answer for one question together with its
// most recent similarity score. Skipped answers (too short to score) keep
// Scored=false.
type Answer struct {
	Text     string   `json:"text"`
	Score    float64  `json:"score"`
	Feedback Feedback `json:"feedback,omitempty"`
	Scored   bool     `json:"scored"`
}

// Session is the complete mutable state of one interview attempt. Questions
// and IdealAnswers are parallel sequences sharing an index; Answers is keyed
// by 1-based question index.
type Session struct {
	ID           string         `json:"id"`
	State        SessionState   `json:"state"`
	Filename     string         `json:"filename,omitempty"`
	Skills       []string       `json:"skills,omitempty"`
	Questions    []string       `json:"questions,omitempty"`
	IdealAnswers []string       `json:"-"`
	Answers      map[int]Answer `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     StateNotStarted,
		Answers:   map[int]Answer{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Begin moves the session to in-progress with the extracted skills and the
// generated question/ideal-answer pairs. Zero pairs is a valid outcome.
func (s *Session) Begin(filename string, skills, questions, idealAnswers []string, now time.Time) {
	s.State = StateInProgress
	s.Filename = filename
	s.Skills = skills
	s.Questions = questions
	s.IdealAnswers = idealAnswers
	s.Answers = map[int]Answer{}
	s.UpdatedAt = now
}

// Reset clears every field populated since creation, returning the session to
// its initial unstarted shape.
func (s *Session) Reset(now time.Time) {
	s.State = StateNotStarted
	s.Filename = ""
	s.Skills = nil
	s.Questions = nil
	s.IdealAnswers = nil
	s.Answers = map[int]Answer{}
	s.UpdatedAt = now
}

// AggregateScore is the arithmetic mean of all currently computed scores,
// rounded to two decimals. Derived on every call, never cached.
func (s *Session) AggregateScore() (float64, bool) {
	var sum float64
	var n int
	for _, a := range s.Answers {
		if !a.Scored {
			continue
		}
		sum += a.Score
		n++
	}
	if n == 0 {
		return 0, false
	}
	return Round2(sum / float64(n)), true
}

func (s *Session) Clone() *Session {
	clone := *s
	clone.Skills = append([]string(nil), s.Skills...)
	clone.Questions = append([]string(nil), s.Questions...)
	clone.IdealAnswers = append([]string(nil), s.IdealAnswers...)
	clone.Answers = make(map[int]Answer, len(s.Answers))
	for idx, a := range s.Answers {
		clone.Answers[idx] = a
	}
	return &clone
}

// ScoreResult is the outcome of submitting one answer.
type ScoreResult struct {
	QuestionIndex int
	Skipped       bool
	Score         float64
	Feedback      Feedback
	Aggregate     float64
	HasAggregate  bool
}
