package extract

import "strings"

const fence = "```"

// Sanitize isolates a single JSON object from an oracle response.
//
// Markdown fences are stripped, the first object is cut out by balanced-brace
// scanning (dropping any prose after it) and trailing commas before a closing
// brace or bracket are removed. Text without an opening brace is returned
// unchanged so the JSON parser reports the failure.
func Sanitize(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.Contains(text, fence) {
		for _, part := range strings.Split(text, fence) {
			part = strings.TrimSpace(part)
			if strings.HasPrefix(strings.ToLower(part), "json") {
				text = strings.TrimSpace(part[len("json"):])
				break
			}
			if strings.HasPrefix(part, "{") || strings.HasPrefix(part, "[") {
				text = part
				break
			}
		}
	}

	start := strings.Index(text, "{")
	if start == -1 {
		return text
	}
	if end := matchingBrace(text, start); end > start {
		text = text[start : end+1]
	} else {
		text = text[start:]
	}

	return stripTrailingCommas(text)
}

// stripTrailingCommas drops commas that are followed only by whitespace and a
// closing brace or bracket. Commas inside string literals are kept.
func stripTrailingCommas(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}
		switch c {
		case '"':
			inString = true
		case ',':
			j := i + 1
			for j < len(text) && isJSONSpace(text[j]) {
				j++
			}
			if j < len(text) && (text[j] == '}' || text[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// matchingBrace returns the index of the '}' closing the '{' at start, or -1.
// Braces inside string literals do not count.
func matchingBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
