// Package extract turns a reference document into plain text annotated with
// page markers the chunker understands.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/mwiater/tccc/internal/logging"
)

// PageMarker formats the line inserted before each page's text.
func PageMarker(page int) string {
	return fmt.Sprintf("--- Page %d ---", page)
}

// ExtractionError reports why a document could not be turned into text.
type ExtractionError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract %s: %s", e.Path, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ErrNoText is wrapped when a readable document yields no text.
var ErrNoText = errors.New("no text extracted")

// Extract reads the document at path. PDFs are read page by page, each page
// preceded by its PageMarker; .txt and .md files are returned verbatim.
func Extract(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &ExtractionError{Path: path, Reason: "document not found", Err: err}
		}
		return "", &ExtractionError{Path: path, Reason: "stat document", Err: err}
	}
	if info.IsDir() {
		return "", &ExtractionError{Path: path, Reason: "path is a directory"}
	}

	var text string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		text, err = extractPDF(path)
	case ".txt", ".text", ".md":
		text, err = extractPlain(path)
	default:
		return "", &ExtractionError{Path: path, Reason: fmt.Sprintf("unsupported document type %q", ext)}
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Path: path, Reason: "document is empty", Err: ErrNoText}
	}
	return text, nil
}

func extractPlain(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Reason: "read document", Err: err}
	}
	logging.LogEvent("[EXTRACT] Read %s (%d bytes)", path, len(raw))
	return string(raw), nil
}

func extractPDF(path string) (text string, err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Path: path, Reason: "malformed pdf", Err: fmt.Errorf("%v", r)}
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Reason: "open pdf", Err: err}
	}
	defer f.Close()

	var b strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Path: path, Reason: fmt.Sprintf("read page %d", i), Err: err}
		}
		b.WriteString("\n")
		b.WriteString(PageMarker(i))
		b.WriteString("\n")
		b.WriteString(content)
	}

	out := b.String()
	logging.LogEvent("[EXTRACT] Extracted text from %d pages (%d characters)", pages, len([]rune(out)))
	return out, nil
}
