package evaluator

import (
	"context"
	"fmt"
	"math"

	"github.com/kirillkom/ai-interview-coach/internal/core/domain"
	"github.com/kirillkom/ai-interview-coach/internal/core/ports"
)

// Evaluator scores a candidate answer against the ideal answer by cosine
// similarity of their embeddings. The embedder is injected so tests can
// substitute a stub embedding function; the shared client wired in bootstrap
// is the one model instance for the whole process.
type Evaluator struct {
	embedder ports.Embedder
}

func New(embedder ports.Embedder) *Evaluator {
	return &Evaluator{embedder: embedder}
}

// Score returns the similarity in [0,1] rounded to two decimals. Negative
// cosine values clamp to zero.
func (e *Evaluator) Score(ctx context.Context, candidate, ideal string) (float64, error) {
	vectors, err := e.embedder.Embed(ctx, []string{candidate, ideal})
	if err != nil {
		return 0, fmt.Errorf("embed answers: %w", err)
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("embed answers: expected 2 vectors, got %d", len(vectors))
	}

	similarity, err := cosineSimilarity(vectors[0], vectors[1])
	if err != nil {
		return 0, fmt.Errorf("cosine similarity: %w", err)
	}
	if similarity < 0 {
		similarity = 0
	}
	if similarity > 1 {
		similarity = 1
	}
	return domain.Round2(similarity), nil
}

func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d/%d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero magnitude vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
