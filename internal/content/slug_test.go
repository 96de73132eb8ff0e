package content_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/content"
)

func TestDeriveSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "punctuation dropped", in: "Premium Colombian Coffee!", want: "premium-colombian-coffee"},
		{name: "surrounding and repeated spaces", in: "  Hello   World  ", want: "hello-world"},
		{name: "hyphen runs collapse", in: "a -- b", want: "a-b"},
		{name: "leading and trailing hyphens", in: "-Leading-", want: "leading"},
		{name: "digits kept", in: "100% Pure  Oil", want: "100-pure-oil"},
		{name: "non ascii letters removed", in: "Café Olé", want: "caf-ol"},
		{name: "tabs and newlines", in: "Tab\tSeparated\nName", want: "tab-separated-name"},
		{name: "vertical tab", in: "Coffee\vBeans", want: "coffee-beans"},
		{name: "no-break space", in: "Coffee\u00a0Beans", want: "coffee-beans"},
		{name: "em space", in: "Coffee\u2003Beans", want: "coffee-beans"},
		{name: "ideographic space", in: "Coffee\u3000Beans", want: "coffee-beans"},
		{name: "unit separator", in: "Coffee\x1fBeans", want: "coffee-beans"},
		{name: "no alphanumerics", in: "!!! ???", want: ""},
		{name: "empty", in: "", want: ""},
		{name: "already a slug", in: "ecoclean-detergent", want: "ecoclean-detergent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, content.DeriveSlug(tt.in))
		})
	}
}

func TestDeriveSlug_WellFormed(t *testing.T) {
	t.Parallel()

	wellFormed := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	names := []string{
		"EcoClean Detergent",
		"  --Mixed__Case & Symbols--  ",
		"Version 2.0 (Beta)",
		"x",
		"A B",
		"Ünïcödé Wörds 42",
		"trailing space ",
		"---a---b---",
	}

	for _, name := range names {
		slug := content.DeriveSlug(name)
		assert.Regexp(t, wellFormed, slug, "name %q", name)
		assert.Equal(t, slug, content.DeriveSlug(name), "deterministic for %q", name)
		assert.Equal(t, slug, content.DeriveSlug(slug), "idempotent for %q", name)
	}
}
