package parser

import (
	"strconv"
	"strings"
)

// Record is one fully parsed log line. Fields holds the raw matched text
// per field name, still carrying quote/bracket delimiters for delimited
// fields. request_time is converted and kept in RequestTime instead; the
// request path lands in URL.
type Record struct {
	Fields      map[string]string
	URL         string
	RequestTime float64
}

// ParseLine decodes one raw line against the compiled format. It returns
// false when the line does not match; a single bad field invalidates the
// whole line, no partial record is ever returned. Malformed lines are an
// expected, high-frequency input, so this is a plain outcome, not an error.
func ParseLine(line string, format Format) (Record, bool) {
	rec := Record{Fields: make(map[string]string, len(format))}
	pos := 0

	for i, field := range format {
		var match string
		var ok bool
		switch field.Kind {
		case FieldQuoted:
			match, ok = matchDelimited(line[pos:], '"', '"')
		case FieldBracketed:
			match, ok = matchDelimited(line[pos:], '[', ']')
		default:
			match, ok = matchPlain(line[pos:])
		}
		if !ok {
			return Record{}, false
		}

		switch field.Name {
		case "request":
			// The request line must hold at least a method and a path;
			// the path is what the whole pipeline aggregates on.
			parts := strings.Fields(match)
			if len(parts) < 2 {
				return Record{}, false
			}
			rec.URL = parts[1]
			rec.Fields[field.Name] = match
		case "request_time":
			t, err := strconv.ParseFloat(match, 64)
			if err != nil {
				return Record{}, false
			}
			rec.RequestTime = t
		default:
			rec.Fields[field.Name] = match
		}

		pos += len(match)
		if i < len(format)-1 {
			sep := leadingSpace(line[pos:])
			if sep == 0 {
				return Record{}, false
			}
			pos += sep
		}
	}
	return rec, true
}

// matchPlain captures a maximal run of non-whitespace characters anchored
// at the start of s.
func matchPlain(s string) (string, bool) {
	end := 0
	for end < len(s) && !isSpace(s[end]) {
		end++
	}
	if end == 0 {
		return "", false
	}
	return s[:end], true
}

// matchDelimited captures open + at least one non-close character + close,
// anchored at the start of s. The delimiters stay in the match.
func matchDelimited(s string, open, close byte) (string, bool) {
	if len(s) < 3 || s[0] != open {
		return "", false
	}
	i := strings.IndexByte(s[1:], close)
	if i < 1 {
		return "", false
	}
	return s[:i+2], true
}

func leadingSpace(s string) int {
	n := 0
	for n < len(s) && isSpace(s[n]) {
		n++
	}
	return n
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
