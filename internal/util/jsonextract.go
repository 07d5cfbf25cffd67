package util

import (
	"fmt"
	"strings"
)

// ExtractJSONObject pulls the first JSON object out of a model response.
// Models routinely wrap the payload in markdown fences or prepend prose even
// when told not to, so extraction runs in a fixed order: strip code fences,
// then, if the text still does not start with "{", bracket-match the first
// object span.
func ExtractJSONObject(text string) (string, error) {
	text = stripCodeFence(text)
	if text == "" {
		return "", fmt.Errorf("empty response")
	}

	if strings.HasPrefix(text, "{") {
		if end := matchBrace(text); end > 0 {
			return text[:end], nil
		}
		return "", fmt.Errorf("unbalanced JSON object")
	}

	start := strings.Index(text, "{")
	if start < 0 {
		return "", fmt.Errorf("no JSON object found in response")
	}
	rest := text[start:]
	end := matchBrace(rest)
	if end <= 0 {
		return "", fmt.Errorf("unbalanced JSON object")
	}
	return rest[:end], nil
}

// stripCodeFence removes ```json ... ``` and generic ``` wrappers.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line, if any.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// matchBrace returns the index just past the brace that closes the object
// opening at text[0], or -1 when the object never closes. String literals and
// escapes are honored so braces inside values don't end the span early.
func matchBrace(text string) int {
	depth := 0
	inString := false
	escaped := false

	for i, r := range text {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return i + 1
				}
			}
		}
	}
	return -1
}
