package content

import (
	"fmt"
	"unicode/utf8"
)

// snippetLen bounds how much of a bad reply is kept on a ParseError.
const snippetLen = 500

// ParseError means the model reply was not a single valid JSON value.
type ParseError struct {
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model reply: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError names the first field of a parsed reply that does not
// match DocumentShape.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid document: " + e.Reason
	}
	return fmt.Sprintf("invalid document field %q: %s", e.Field, e.Reason)
}

func newParseError(raw string, err error) *ParseError {
	snippet := raw
	if len(snippet) > snippetLen {
		cut := snippetLen
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = snippet[:cut]
	}
	return &ParseError{Snippet: snippet, Err: err}
}
