package service

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
)

// maxSanitizePasses bounds the strip/unescape loop for nested encodings.
const maxSanitizePasses = 5

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// StripMarkup removes every HTML element from s and returns plain text.
// Text without markup is returned unchanged.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	for range maxSanitizePasses {
		next := html.UnescapeString(getPolicy().Sanitize(s))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// sanitizeDocument returns a copy of doc with markup stripped from every
// generated text, including string values inside the structured data.
func sanitizeDocument(doc *domain.ContentDocument) *domain.ContentDocument {
	out := *doc
	out.SEOTitle = StripMarkup(doc.SEOTitle)
	out.MetaDescription = StripMarkup(doc.MetaDescription)
	out.IntroContent = StripMarkup(doc.IntroContent)
	out.CallToAction = StripMarkup(doc.CallToAction)

	out.Sections = make([]domain.Section, len(doc.Sections))
	for i, s := range doc.Sections {
		out.Sections[i] = domain.Section{Heading: StripMarkup(s.Heading), Content: StripMarkup(s.Content)}
	}
	out.FAQs = make([]domain.FAQ, len(doc.FAQs))
	for i, f := range doc.FAQs {
		out.FAQs[i] = domain.FAQ{Question: StripMarkup(f.Question), Answer: StripMarkup(f.Answer)}
	}

	if schema, ok := sanitizeValue(doc.JSONLDSchema).(map[string]any); ok {
		out.JSONLDSchema = schema
	}
	return &out
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case string:
		return StripMarkup(val)
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = sanitizeValue(item)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = sanitizeValue(item)
		}
		return s
	default:
		return v
	}
}
