package resume

import "testing"

func TestExtractUnsupportedSuffixYieldsEmptyText(t *testing.T) {
	extractor := NewExtractor()

	for _, filename := range []string{"resume.txt", "resume.doc", "resume", "resume.pdf.bak"} {
		text, err := extractor.Extract(filename, []byte("python sql"))
		if err != nil {
			t.Fatalf("Extract(%q) error = %v, want silent empty", filename, err)
		}
		if text != "" {
			t.Fatalf("Extract(%q) = %q, want empty", filename, text)
		}
	}
}

func TestExtractDispatchIsCaseInsensitive(t *testing.T) {
	extractor := NewExtractor()

	// Suffix matches .pdf, so the payload reaches the PDF parser and fails
	// there instead of being silently ignored.
	if _, err := extractor.Extract("Resume.PDF", []byte("not a pdf")); err == nil {
		t.Fatalf("expected parser failure for garbage .PDF payload")
	}
}

func TestExtractMalformedDocumentPropagatesParserError(t *testing.T) {
	extractor := NewExtractor()

	if _, err := extractor.Extract("resume.pdf", []byte{0x00, 0x01}); err == nil {
		t.Fatalf("expected error for malformed pdf")
	}
	if _, err := extractor.Extract("resume.docx", []byte{0x00, 0x01}); err == nil {
		t.Fatalf("expected error for malformed docx")
	}
}

func TestSplitParagraphsJoinsRunsAndDropsMarkup(t *testing.T) {
	content := `<w:body>` +
		`<w:p><w:r><w:t>Python developer</w:t></w:r><w:r><w:t> since 2019</w:t></w:r></w:p>` +
		`<w:p></w:p>` +
		`<w:p><w:r><w:t>Knows SQL</w:t></w:r></w:p>` +
		`</w:body>`

	paragraphs := splitParagraphs(content)
	if len(paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d: %v", len(paragraphs), paragraphs)
	}
	if paragraphs[0] != "Python developer since 2019" {
		t.Fatalf("unexpected first paragraph: %q", paragraphs[0])
	}
	if paragraphs[1] != "Knows SQL" {
		t.Fatalf("unexpected second paragraph: %q", paragraphs[1])
	}
}
