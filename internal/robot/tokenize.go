package robot

import "strings"

// Tokenize splits a robot payload (the text after TAG:) into fields.
//
// Double quotes toggle quoting and are dropped, so commas inside a quoted
// section stay in the field. A backslash drops itself and keeps the next
// character literally: `\"` yields `"` and `\n` yields `n`, not a newline.
// An empty payload yields no fields; a trailing comma yields a trailing empty
// field. Unterminated quotes and a dangling backslash are tolerated.
func Tokenize(payload string) []string {
	var (
		fields   []string
		buf      strings.Builder
		inQuotes bool
		escaped  bool
	)
	// Every delimiter is ASCII, so walking bytes keeps multi-byte UTF-8
	// sequences (and invalid bytes) intact.
	for i := 0; i < len(payload); i++ {
		c := payload[i]
		switch {
		case escaped:
			buf.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, buf.String())
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}
	if buf.Len() > 0 || len(fields) > 0 {
		fields = append(fields, buf.String())
	}
	return fields
}
