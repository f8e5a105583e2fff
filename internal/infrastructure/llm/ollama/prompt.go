package ollama

import (
	"fmt"
	"strings"
)

func buildInterviewPrompt(skills []string) string {
	return fmt.Sprintf(`Generate HR-style interview questions and their ideal answers for the following skills: %s.
Format each pair as exactly two lines:
Q: <question>
A: <ideal answer>
Only include one question per skill. Do not add numbering or commentary.`,
		strings.Join(skills, ", "))
}
