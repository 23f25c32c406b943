package resumeparser

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ExtractFunc turns file bytes into plain text.
type ExtractFunc func(data []byte) (string, error)

func defaultExtractors() map[string]ExtractFunc {
	return map[string]ExtractFunc{
		mimePDF:  ExtractPDF,
		mimeDOCX: ExtractDOCX,
	}
}

// ExtractPDF concatenates the plain text of every page.
func ExtractPDF(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", errors.New("empty PDF file")
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// ExtractDOCX returns the document body text, one paragraph per line.
func ExtractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty DOCX file")
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxText(doc.Editable().GetContent()), nil
}

func docxText(xml string) string {
	s := docxParagraphEnd.ReplaceAllStringFunc(xml, func(m string) string {
		if strings.HasPrefix(m, "<w:tab") {
			return "\t"
		}
		return "\n"
	})
	s = xmlTag.ReplaceAllString(s, "")
	return html.UnescapeString(s)
}

// sanitizeText drops NUL bytes and invalid UTF-8, neither of which Postgres
// TEXT or JSONB columns accept.
func sanitizeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.ReplaceAll(s, "\x00", "")
}
