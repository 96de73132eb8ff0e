package content

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

var errEmptyReply = errors.New("reply is empty")

// ParseReply decodes a model reply into a generic JSON value. A Markdown code
// fence around the JSON is tolerated; anything after the first value is not.
// Numbers are kept as json.Number so structured data survives unchanged.
func ParseReply(raw string) (any, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return nil, newParseError(raw, errEmptyReply)
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, newParseError(raw, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, newParseError(raw, errors.New("trailing data after JSON value"))
	}
	return v, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
