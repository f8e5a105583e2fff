package skills

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// vocabulary is the fixed list of recognized skill and soft-skill terms.
// Matching is substring containment, so order here is also result order.
var vocabulary = []string{
	"python", "java", "sql", "html", "css", "javascript", "power bi",
	"machine learning", "deep learning", "communication", "teamwork",
	"leadership", "problem solving", "pandas", "numpy", "excel", "react",
}

// Matcher finds vocabulary terms in resume text. Containment is
// case-insensitive with no word-boundary check, so a term inside an unrelated
// word still matches.
type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

func (m *Matcher) Match(text string) []string {
	lowered := strings.ToLower(text)
	titler := cases.Title(language.English)

	var matched []string
	for _, term := range vocabulary {
		if strings.Contains(lowered, term) {
			matched = append(matched, titler.String(term))
		}
	}
	return matched
}
