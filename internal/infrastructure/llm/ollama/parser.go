package ollama

import "strings"

const (
	questionMarker = "Q:"
	answerMarker   = "A:"
)

// parseQuestionAnswerPairs scans model output line by line. A question line
// opens a pending question; the next answer line closes it into the two
// parallel output sequences. A second question line while one is pending
// replaces it, so an unanswered question is dropped rather than paired with a
// later answer. Blank lines and lines without a marker are skipped. The model
// is trusted to follow the format; there is no retry and no check that the
// pair count equals the skill count.
func parseQuestionAnswerPairs(raw string) (questions, idealAnswers []string) {
	var pending string
	var hasPending bool

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, questionMarker):
			pending = strings.TrimSpace(strings.TrimPrefix(line, questionMarker))
			hasPending = true
		case strings.HasPrefix(line, answerMarker):
			if !hasPending {
				continue
			}
			questions = append(questions, pending)
			idealAnswers = append(idealAnswers, strings.TrimSpace(strings.TrimPrefix(line, answerMarker)))
			hasPending = false
		}
	}
	return questions, idealAnswers
}
