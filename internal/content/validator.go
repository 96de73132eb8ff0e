package content

import (
	"encoding/json"
	"fmt"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
)

// Validate checks a parsed reply against DocumentShape and converts it into a
// ContentDocument. It stops at the first violation. The returned document has
// no slug; the pipeline stamps it.
func Validate(candidate any) (*domain.ContentDocument, error) {
	root, ok := candidate.(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: fmt.Sprintf("expected a JSON object, got %s", jsonType(candidate))}
	}

	for _, f := range DocumentShape.Fields {
		if _, present := root[f.Key]; !present {
			return nil, &ValidationError{Field: f.Key, Reason: "required field is missing"}
		}
	}

	for _, f := range DocumentShape.Fields {
		if err := checkField(f, root[f.Key]); err != nil {
			return nil, err
		}
	}

	return buildDocument(root), nil
}

func checkField(f Field, v any) error {
	switch f.Kind {
	case KindString:
		if _, ok := v.(string); !ok {
			return &ValidationError{Field: f.Key, Reason: "expected a string, got " + jsonType(v)}
		}
	case KindObjectList:
		items, ok := v.([]any)
		if !ok {
			return &ValidationError{Field: f.Key, Reason: "expected an array, got " + jsonType(v)}
		}
		for i, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				return &ValidationError{
					Field:  fmt.Sprintf("%s[%d]", f.Key, i),
					Reason: "expected an object, got " + jsonType(item),
				}
			}
			for _, key := range f.ItemKeys {
				if _, ok := obj[key].(string); !ok {
					return &ValidationError{
						Field:  fmt.Sprintf("%s[%d].%s", f.Key, i, key),
						Reason: "expected a string, got " + jsonType(obj[key]),
					}
				}
			}
		}
	case KindObject:
		if _, ok := v.(map[string]any); !ok {
			return &ValidationError{Field: f.Key, Reason: "expected an object, got " + jsonType(v)}
		}
	}
	return nil
}

// buildDocument assumes root already passed checkField for every field.
func buildDocument(root map[string]any) *domain.ContentDocument {
	doc := &domain.ContentDocument{
		SEOTitle:        root[KeySEOTitle].(string),
		MetaDescription: root[KeyMetaDescription].(string),
		IntroContent:    root[KeyIntroContent].(string),
		CallToAction:    root[KeyCallToAction].(string),
		JSONLDSchema:    root[KeyJSONLDSchema].(map[string]any),
	}

	sections := root[KeySections].([]any)
	doc.Sections = make([]domain.Section, len(sections))
	for i, item := range sections {
		obj := item.(map[string]any)
		doc.Sections[i] = domain.Section{
			Heading: obj[KeyHeading].(string),
			Content: obj[KeyContent].(string),
		}
	}

	faqs := root[KeyFAQs].([]any)
	doc.FAQs = make([]domain.FAQ, len(faqs))
	for i, item := range faqs {
		obj := item.(map[string]any)
		doc.FAQs[i] = domain.FAQ{
			Question: obj[KeyQuestion].(string),
			Answer:   obj[KeyAnswer].(string),
		}
	}

	return doc
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
