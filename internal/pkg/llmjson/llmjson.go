// Package llmjson pulls JSON objects out of free-form model output.
package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrNoJSON        = errors.New("no JSON object in model output")
	ErrSchemaInvalid = errors.New("model output does not match expected shape")
)

// CleanBlock strips a surrounding markdown code fence, if any.
func CleanBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		first := text[:idx]
		if len(first) < 20 && !strings.Contains(first, " ") && !strings.Contains(first, "{") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// FirstObject returns the first balanced {...} substring of s. Braces inside
// JSON strings are ignored.
func FirstObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// Extract returns the model output as JSON text: the whole (unfenced) output
// when it parses, otherwise the first balanced object that parses.
func Extract(raw string) (string, error) {
	text := CleanBlock(raw)
	if json.Valid([]byte(text)) {
		return text, nil
	}
	obj, ok := FirstObject(text)
	if !ok || !json.Valid([]byte(obj)) {
		return "", ErrNoJSON
	}
	return obj, nil
}

// Schema is a compiled JSON schema used to check model output.
type Schema struct {
	s *gojsonschema.Schema
}

// MustSchema compiles a schema literal, panicking on a malformed schema.
func MustSchema(src string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("llmjson: invalid schema: %v", err))
	}
	return &Schema{s: s}
}

func (s *Schema) Validate(doc string) error {
	res, err := s.s.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSchemaInvalid, strings.Join(msgs, "; "))
}

// Decode extracts JSON from raw, checks it against schema (when non-nil) and
// unmarshals it into out.
func Decode(raw string, schema *Schema, out any) error {
	doc, err := Extract(raw)
	if err != nil {
		return err
	}
	if schema != nil {
		if err := schema.Validate(doc); err != nil {
			return err
		}
	}
	return json.Unmarshal([]byte(doc), out)
}
