package content_test

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/content"
)

func TestParseReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "plain", raw: `{"a":"b"}`},
		{name: "surrounding whitespace", raw: "\n  {\"a\":\"b\"}  \n"},
		{name: "json fence", raw: "```json\n{\"a\":\"b\"}\n```"},
		{name: "bare fence", raw: "```\n{\"a\":\"b\"}\n```"},
		{name: "single line fence", raw: "```json{\"a\":\"b\"}```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := content.ParseReply(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"a": "b"}, v)
		})
	}
}

func TestParseReply_KeepsNumbers(t *testing.T) {
	t.Parallel()

	v, err := content.ParseReply(`{"price": 12.50}`)
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("12.50"), m["price"])
}

func TestParseReply_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace", raw: "   \n"},
		{name: "prose", raw: "Sure! Here is your page."},
		{name: "truncated", raw: `{"seo_title": "Eco`},
		{name: "trailing value", raw: `{"a":1} {"b":2}`},
		{name: "trailing prose", raw: `{"a":1} hope this helps`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := content.ParseReply(tt.raw)

			var parseErr *content.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.LessOrEqual(t, len(parseErr.Snippet), 500)
		})
	}
}

func TestParseReply_SnippetKeepsRunesWhole(t *testing.T) {
	t.Parallel()

	// 499 ASCII bytes put the 500-byte cut inside the two-byte "é".
	raw := strings.Repeat("x", 499) + strings.Repeat("é", 50)

	_, err := content.ParseReply(raw)

	var parseErr *content.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.True(t, utf8.ValidString(parseErr.Snippet))
	assert.Equal(t, strings.Repeat("x", 499), parseErr.Snippet)
}
