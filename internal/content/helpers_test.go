package content_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
)

func ecoCleanInput() domain.ProductInput {
	return domain.ProductInput{
		Name:           "EcoClean Detergent",
		Category:       "Household",
		Features:       []string{"biodegradable", "concentrated"},
		Keywords:       []string{"eco", "clean"},
		Location:       "Portland",
		TargetAudience: "eco-conscious families",
	}
}

// validReply returns a freshly decoded model reply that matches the shape.
func validReply(t *testing.T) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(validReplyJSON), &m))
	return m
}

const validReplyJSON = `{
  "seo_title": "EcoClean Detergent | Plant-Based Laundry",
  "meta_description": "Biodegradable, concentrated detergent for eco-conscious families in Portland.",
  "intro_content": "Meet EcoClean Detergent.",
  "sections": [
    {"heading": "Benefits & Features", "content": "Biodegradable formula."},
    {"heading": "Why Choose Us", "content": "Made in Portland."}
  ],
  "faqs": [
    {"question": "Is it safe for septic systems?", "answer": "Yes."},
    {"question": "How many loads per bottle?", "answer": "Sixty-four."}
  ],
  "call_to_action": "Order EcoClean Today",
  "json_ld_schema": {
    "@context": "https://schema.org/",
    "@type": "Product",
    "name": "EcoClean Detergent",
    "offers": {"@type": "Offer", "price": 12.5}
  }
}`
