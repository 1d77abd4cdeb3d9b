package parser

import (
	"errors"
	"strings"
)

// FieldKind selects the matcher used for a field.
type FieldKind int

const (
	// FieldPlain matches a maximal run of non-whitespace characters.
	FieldPlain FieldKind = iota
	// FieldQuoted matches "..." including the quotes.
	FieldQuoted
	// FieldBracketed matches [...] including the brackets.
	FieldBracketed
)

// Field is one positional descriptor of the log format.
type Field struct {
	Kind FieldKind
	Name string
}

// Format is the compiled ordered field template. Built once at startup,
// immutable afterwards.
type Format []Field

// DefaultTemplate describes the ui access log layout.
const DefaultTemplate = `remote_addr remote_user http_x_real_ip [time_local] "request" status body_bytes_sent ` +
	`"http_referer" "http_user_agent" "http_x_forwarded_for" "http_X_REQUEST_ID" "http_X_RB_USER" ` +
	`request_time`

// Compile turns a whitespace-separated template into a Format. A token
// wrapped in double quotes becomes a quoted field, a token wrapped in
// square brackets a bracketed field, anything else a plain field. The
// field name is the token with its delimiters stripped.
func Compile(template string) (Format, error) {
	tokens := strings.Fields(template)
	if len(tokens) == 0 {
		return nil, errors.New("empty format template")
	}

	format := make(Format, 0, len(tokens))
	for _, tok := range tokens {
		switch {
		case len(tok) > 2 && strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`):
			format = append(format, Field{Kind: FieldQuoted, Name: strings.Trim(tok, `"`)})
		case len(tok) > 2 && strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]"):
			format = append(format, Field{Kind: FieldBracketed, Name: strings.Trim(tok, "[]")})
		default:
			format = append(format, Field{Kind: FieldPlain, Name: tok})
		}
	}
	return format, nil
}
