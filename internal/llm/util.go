package llm

import (
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when a response contains no complete {...} object.
var ErrNoJSONObject = errors.New("no valid JSON found in the response")

// CleanJSONBlock unwraps a response fenced as a markdown code block, with or
// without a language tag. Unfenced text is only trimmed.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	body, ok := strings.CutPrefix(text, "```")
	if !ok {
		return text
	}

	// A short single-word first line is a language tag.
	if first, rest, found := strings.Cut(body, "\n"); found {
		tag := strings.TrimSpace(first)
		if len(tag) < 20 && !strings.ContainsAny(tag, " {[") {
			body = rest
		}
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

// ExtractJSONObject returns the first balanced {...} object in text, dropping
// any prose the model wrapped around it. Braces inside JSON strings are not
// counted.
func ExtractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSONObject
}
