package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text unchanged", in: "Benefits & Features of EcoClean's formula", want: "Benefits & Features of EcoClean's formula"},
		{name: "comparison kept", in: "Costs < $10 per load", want: "Costs < $10 per load"},
		{name: "tags removed", in: "<p>Safe for <em>every</em> surface</p>", want: "Safe for every surface"},
		{name: "script removed", in: "Fresh<script>alert(1)</script> laundry", want: "Fresh laundry"},
		{name: "encoded markup removed", in: "&lt;b&gt;Bold&lt;/b&gt; claim", want: "Bold claim"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StripMarkup(tt.in))
		})
	}
}

func TestSanitizeValue_Nested(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"name":   "<i>EcoClean</i>",
		"offers": map[string]any{"price": "<b>9</b>"},
		"tags":   []any{"<u>green</u>", 3},
	}

	got := sanitizeValue(in).(map[string]any)

	assert.Equal(t, "EcoClean", got["name"])
	assert.Equal(t, "9", got["offers"].(map[string]any)["price"])
	assert.Equal(t, []any{"green", 3}, got["tags"])
}
