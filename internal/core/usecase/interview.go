package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kirillkom/ai-interview-coach/internal/core/domain"
	"github.com/kirillkom/ai-interview-coach/internal/core/ports"
)

// InterviewUseCase drives the upload -> extract -> generate -> answer/score ->
// restart flow. Every transition runs synchronously on the caller's goroutine.
type InterviewUseCase struct {
	store     ports.SessionStore
	extractor ports.ResumeExtractor
	matcher   ports.SkillMatcher
	generator ports.QuestionGenerator
	scorer    ports.AnswerScorer
}

func NewInterviewUseCase(
	store ports.SessionStore,
	extractor ports.ResumeExtractor,
	matcher ports.SkillMatcher,
	generator ports.QuestionGenerator,
	scorer ports.AnswerScorer,
) *InterviewUseCase {
	return &InterviewUseCase{
		store:     store,
		extractor: extractor,
		matcher:   matcher,
		generator: generator,
		scorer:    scorer,
	}
}

func (uc *InterviewUseCase) Start(ctx context.Context, filename string, data []byte) (*domain.Session, error) {
	text, err := uc.extractor.Extract(filename, data)
	if err != nil {
		return nil, fmt.Errorf("extract resume text: %w", err)
	}

	// An unsupported suffix reads as empty text and is indistinguishable from
	// a resume without known skills.
	skills := uc.matcher.Match(text)
	if len(skills) == 0 {
		return nil, domain.WrapError(domain.ErrNoSkillsFound, "match skills", errors.New("resume matched no vocabulary terms"))
	}

	questions, idealAnswers, err := uc.generator.Generate(ctx, skills)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	if len(questions) != len(idealAnswers) {
		return nil, fmt.Errorf("generate questions: questions/answers mismatch: %d/%d", len(questions), len(idealAnswers))
	}

	now := time.Now().UTC()
	session := domain.NewSession(uuid.NewString(), now)
	// Zero parsed pairs still starts the interview; the session simply has no
	// questions to answer.
	session.Begin(filename, skills, questions, idealAnswers, now)

	if err := uc.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (uc *InterviewUseCase) Get(ctx context.Context, id string) (*domain.Session, error) {
	session, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch session: %w", err)
	}
	return session, nil
}

func (uc *InterviewUseCase) SubmitAnswer(ctx context.Context, id string, questionIndex int, answer string) (domain.ScoreResult, error) {
	session, err := uc.store.Get(ctx, id)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("fetch session: %w", err)
	}
	if session.State != domain.StateInProgress {
		return domain.ScoreResult{}, domain.WrapError(domain.ErrInvalidInput, "submit answer", errors.New("interview is not in progress"))
	}
	if questionIndex < 1 || questionIndex > len(session.Questions) {
		return domain.ScoreResult{}, domain.WrapError(domain.ErrInvalidInput, "submit answer", fmt.Errorf("question index %d out of range", questionIndex))
	}

	result := domain.ScoreResult{QuestionIndex: questionIndex}

	if utf8.RuneCountInString(strings.TrimSpace(answer)) <= domain.MinScorableAnswerLen {
		// Too short to score. The text is still recorded so a later edit
		// replaces it, but no score is computed and no error is reported.
		session.Answers[questionIndex] = domain.Answer{Text: answer}
		result.Skipped = true
	} else {
		score, err := uc.scorer.Score(ctx, answer, session.IdealAnswers[questionIndex-1])
		if err != nil {
			return domain.ScoreResult{}, fmt.Errorf("score answer: %w", err)
		}
		feedback := domain.BucketScore(score)
		session.Answers[questionIndex] = domain.Answer{
			Text:     answer,
			Score:    score,
			Feedback: feedback,
			Scored:   true,
		}
		result.Score = score
		result.Feedback = feedback
	}

	session.UpdatedAt = time.Now().UTC()
	if err := uc.store.Update(ctx, session); err != nil {
		return domain.ScoreResult{}, fmt.Errorf("update session: %w", err)
	}

	result.Aggregate, result.HasAggregate = session.AggregateScore()
	return result, nil
}

func (uc *InterviewUseCase) Restart(ctx context.Context, id string) (*domain.Session, error) {
	session, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch session: %w", err)
	}

	session.Reset(time.Now().UTC())
	if err := uc.store.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return session, nil
}
