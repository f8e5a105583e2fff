package bootstrap

import (
	"time"

	"github.com/kirillkom/ai-interview-coach/internal/config"
	"github.com/kirillkom/ai-interview-coach/internal/core/ports"
	"github.com/kirillkom/ai-interview-coach/internal/core/usecase"
	"github.com/kirillkom/ai-interview-coach/internal/infrastructure/evaluator"
	"github.com/kirillkom/ai-interview-coach/internal/infrastructure/extractor/resume"
	"github.com/kirillkom/ai-interview-coach/internal/infrastructure/llm/ollama"
	"github.com/kirillkom/ai-interview-coach/internal/infrastructure/skills"
	"github.com/kirillkom/ai-interview-coach/internal/infrastructure/store/memory"
	"github.com/kirillkom/ai-interview-coach/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Sessions    *memory.SessionStore
	InterviewUC ports.InterviewService
	Metrics     *metrics.HTTPServerMetrics
}

func New(cfg config.Config) *App {
	// One Ollama client for the whole process: the generator and the embedder
	// share its connection pool, and the embedding model is resolved once on
	// the Ollama side.
	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaChatModel, cfg.OllamaEmbedModel)
	generator := ollama.NewGenerator(ollamaClient)
	embedder := ollama.NewEmbedder(ollamaClient)

	sessions := memory.NewSessionStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)

	interviewUC := usecase.NewInterviewUseCase(
		sessions,
		resume.NewExtractor(),
		skills.NewMatcher(),
		generator,
		evaluator.New(embedder),
	)

	return &App{
		Config:      cfg,
		Sessions:    sessions,
		InterviewUC: interviewUC,
		Metrics:     metrics.NewHTTPServerMetrics("api"),
	}
}
