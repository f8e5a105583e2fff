package domain

import "math"

type Feedback string

const (
	FeedbackGreat       Feedback = "great"
	FeedbackGood        Feedback = "good"
	FeedbackNeedsDetail Feedback = "needs_detail"
)

// Fixed interpretation thresholds, inclusive lower bounds.
const (
	greatThreshold = 0.85
	goodThreshold  = 0.65
)

// MinScorableAnswerLen is the trimmed rune length a submitted answer must
// exceed before it is scored. Shorter answers are recorded but never sent to
// the embedding model.
const MinScorableAnswerLen = 3

// BucketScore maps a similarity score to its feedback bucket.
func BucketScore(score float64) Feedback {
	switch {
	case score >= greatThreshold:
		return FeedbackGreat
	case score >= goodThreshold:
		return FeedbackGood
	default:
		return FeedbackNeedsDetail
	}
}

func (f Feedback) Message() string {
	switch f {
	case FeedbackGreat:
		return "Great answer!"
	case FeedbackGood:
		return "Good answer, could be more specific."
	case FeedbackNeedsDetail:
		return "Try to include a clearer example or more details."
	default:
		return ""
	}
}

// Round2 rounds to two decimal places, the precision of every user-facing
// score in the workflow.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
