package resume

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Extractor turns an uploaded resume into plain text. Dispatch is purely on
// the filename suffix; any suffix other than .pdf and .docx yields empty text
// without an error, which downstream reads as "no skills found".
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(filename string, data []byte) (string, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".pdf"):
		return extractPDF(data)
	case strings.HasSuffix(strings.ToLower(filename), ".docx"):
		return extractDOCX(data)
	}
	return "", nil
}

// extractPDF concatenates each page's plain text in page order, no separator.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("pdf page %d text: %w", i, err)
		}
		builder.WriteString(text)
	}
	return builder.String(), nil
}

// extractDOCX joins paragraph texts in document order, one line break each.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	var builder strings.Builder
	for _, paragraph := range splitParagraphs(doc.Editable().GetContent()) {
		builder.WriteString(paragraph)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// splitParagraphs pulls the visible text of each paragraph out of the raw
// word/document.xml content the docx library exposes.
func splitParagraphs(content string) []string {
	var paragraphs []string
	for _, raw := range strings.Split(content, "</w:p>") {
		text := stripTags(raw)
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return paragraphs
}

func stripTags(raw string) string {
	var builder strings.Builder
	inTag := false
	for _, r := range raw {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			builder.WriteRune(r)
		}
	}
	return strings.TrimSpace(builder.String())
}
