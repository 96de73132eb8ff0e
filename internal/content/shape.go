// Package content generates SEO page content for a product: it renders the
// model prompt, parses and validates the reply, and falls back to
// deterministic copy whenever the model path fails.
package content

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Document keys. They appear in the prompt, in model replies and in the
// JSON form of domain.ContentDocument.
const (
	KeySEOTitle        = "seo_title"
	KeyMetaDescription = "meta_description"
	KeyIntroContent    = "intro_content"
	KeySections        = "sections"
	KeyFAQs            = "faqs"
	KeyCallToAction    = "call_to_action"
	KeyJSONLDSchema    = "json_ld_schema"

	KeyHeading  = "heading"
	KeyContent  = "content"
	KeyQuestion = "question"
	KeyAnswer   = "answer"
)

// Kind is the JSON type a document field must have.
type Kind int

const (
	// KindString is a JSON string.
	KindString Kind = iota
	// KindObjectList is an array of objects whose listed keys hold strings.
	KindObjectList
	// KindObject is any JSON object.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindObjectList:
		return "array of objects"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Field describes one top-level document field.
type Field struct {
	Key  string
	Kind Kind
	// Example is the illustrative value shown to the model for string fields.
	Example string
	// ItemKeys are the string keys every element of an object list must have.
	ItemKeys []string
	// Samples are illustrative elements for object lists, one value per ItemKey.
	Samples [][]string
}

// Shape is an ordered list of required fields.
type Shape struct {
	Fields []Field
}

// Keys returns the field keys in order.
func (s Shape) Keys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}

// DocumentShape is the one definition of a generated document. The prompt
// example and the validator are both derived from it, and the fallback
// document is tested against it.
var DocumentShape = Shape{Fields: []Field{
	{Key: KeySEOTitle, Kind: KindString, Example: "SEO-optimized title under 60 characters"},
	{Key: KeyMetaDescription, Kind: KindString, Example: "Compelling meta description under 160 characters"},
	{Key: KeyIntroContent, Kind: KindString, Example: "Engaging 150-200 word introduction paragraph that's keyword-rich and compelling"},
	{
		Key:      KeySections,
		Kind:     KindObjectList,
		ItemKeys: []string{KeyHeading, KeyContent},
		Samples: [][]string{
			{"Benefits & Features", "Detailed content about benefits and features"},
			{"Why Choose Us", "Compelling reasons and use cases"},
		},
	},
	{
		Key:      KeyFAQs,
		Kind:     KindObjectList,
		ItemKeys: []string{KeyQuestion, KeyAnswer},
		Samples: [][]string{
			{"Relevant FAQ question", "Comprehensive answer"},
			{"Another important question", "Detailed answer"},
			{"Third FAQ question", "Helpful answer"},
		},
	},
	{Key: KeyCallToAction, Kind: KindString, Example: "Compelling CTA text like 'Order Premium Colombian Coffee Today' or 'Get Your Coffee Fix Now'"},
	{Key: KeyJSONLDSchema, Kind: KindObject},
}}

// member is one key of an ordered JSON object.
type member struct {
	Key   string
	Value any // string or object
}

// object is a JSON object that keeps its key order when rendered.
type object []member

// toMap converts o into the map form stored on domain.ContentDocument.
func (o object) toMap() map[string]any {
	m := make(map[string]any, len(o))
	for _, mem := range o {
		if nested, ok := mem.Value.(object); ok {
			m[mem.Key] = nested.toMap()
			continue
		}
		m[mem.Key] = mem.Value
	}
	return m
}

// productSchema is the schema.org Product object used both as the prompt
// example and as the fallback structured data.
func productSchema(name, description, category, brand string) object {
	return object{
		{"@context", "https://schema.org/"},
		{"@type", "Product"},
		{"name", name},
		{"description", description},
		{"category", category},
		{"brand", object{
			{"@type", "Brand"},
			{"name", brand},
		}},
		{"offers", object{
			{"@type", "Offer"},
			{"availability", "https://schema.org/InStock"},
			{"priceCurrency", "USD"},
		}},
	}
}

// renderExample writes the shape as an indented JSON example. The structured
// data example is supplied by the caller because it embeds input values.
func (s Shape) renderExample(schemaExample object) string {
	root := make(object, 0, len(s.Fields))
	for _, f := range s.Fields {
		switch f.Kind {
		case KindString:
			root = append(root, member{f.Key, f.Example})
		case KindObjectList:
			items := make([]object, len(f.Samples))
			for i, sample := range f.Samples {
				item := make(object, len(f.ItemKeys))
				for j, key := range f.ItemKeys {
					item[j] = member{key, sample[j]}
				}
				items[i] = item
			}
			root = append(root, member{f.Key, items})
		case KindObject:
			root = append(root, member{f.Key, schemaExample})
		}
	}

	var b strings.Builder
	writeJSON(&b, root, 0)
	return b.String()
}

func writeJSON(b *strings.Builder, v any, depth int) {
	indent := strings.Repeat("  ", depth)
	inner := strings.Repeat("  ", depth+1)

	switch val := v.(type) {
	case object:
		b.WriteString("{\n")
		for i, mem := range val {
			b.WriteString(inner)
			b.WriteString(quote(mem.Key))
			b.WriteString(": ")
			writeJSON(b, mem.Value, depth+1)
			if i < len(val)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(indent + "}")
	case []object:
		b.WriteString("[\n")
		for i, item := range val {
			b.WriteString(inner)
			writeJSON(b, item, depth+1)
			if i < len(val)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(indent + "]")
	case string:
		b.WriteString(quote(val))
	}
}

// quote JSON-encodes s without HTML escaping so "&" stays readable.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
