package export

import (
	"testing"
	"time"

	"github.com/kirillkom/ai-interview-coach/internal/core/domain"
)

func TestTranscriptWorkbookContents(t *testing.T) {
	now := time.Now().UTC()
	session := domain.NewSession("s-1", now)
	session.Begin(
		"cv.pdf",
		[]string{"Python", "Sql"},
		[]string{"Tell me about Python.", "Tell me about SQL."},
		[]string{"Ideal python answer.", "Ideal sql answer."},
		now,
	)
	session.Answers[1] = domain.Answer{Text: "My python answer", Score: 0.88, Feedback: domain.FeedbackGreat, Scored: true}

	f, err := TranscriptWorkbook(session)
	if err != nil {
		t.Fatalf("TranscriptWorkbook() error = %v", err)
	}
	defer f.Close()

	mustCell := func(cell, want string) {
		t.Helper()
		got, err := f.GetCellValue(transcriptSheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", cell, err)
		}
		if got != want {
			t.Fatalf("cell %s = %q, want %q", cell, got, want)
		}
	}

	mustCell("B1", "Question")
	mustCell("B2", "Tell me about Python.")
	mustCell("C2", "My python answer")
	mustCell("D2", "Ideal python answer.")
	mustCell("E2", "0.88")
	mustCell("B3", "Tell me about SQL.")
	mustCell("C3", "")

	// Skills and aggregate footer below the question rows.
	mustCell("A5", "Skills")
	mustCell("B5", "Python, Sql")
	mustCell("A6", "Final Score")
	mustCell("B6", "0.88")
}

func TestTranscriptWorkbookOmitsAggregateWithoutScores(t *testing.T) {
	now := time.Now().UTC()
	session := domain.NewSession("s-1", now)
	session.Begin("cv.pdf", []string{"Python"}, []string{"q"}, []string{"a"}, now)

	f, err := TranscriptWorkbook(session)
	if err != nil {
		t.Fatalf("TranscriptWorkbook() error = %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue(transcriptSheet, "A5")
	if err != nil {
		t.Fatalf("GetCellValue error = %v", err)
	}
	if got == "Final Score" {
		t.Fatalf("aggregate row must be absent when nothing is scored")
	}
}
