package content

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
)

// Synthesize builds a complete document from the input alone. It makes no
// external calls and always satisfies DocumentShape.
func Synthesize(in domain.ProductInput) *domain.ContentDocument {
	in = in.Normalize()
	allFeatures := joinList(in.Features)
	topFeatures := joinList(in.Features[:min(2, len(in.Features))])

	return &domain.ContentDocument{
		Slug:     DeriveSlug(in.Name),
		SEOTitle: fmt.Sprintf("%s - Premium %s", in.Name, in.Category),
		MetaDescription: fmt.Sprintf("Discover %s - %s. Perfect for %s.",
			in.Name, topFeatures, in.TargetAudience),
		IntroContent: fmt.Sprintf(
			"Welcome to %s, your premier choice for %s. Our product offers %s and is specially designed for %s.",
			in.Name, strings.ToLower(in.Category), allFeatures, in.TargetAudience),
		Sections: []domain.Section{
			{
				Heading: "Key Features",
				Content: fmt.Sprintf(
					"Our %s stands out with these exceptional features: %s. Each feature is carefully crafted to meet the needs of %s.",
					in.Name, allFeatures, in.TargetAudience),
			},
			{
				Heading: "Why Choose Us",
				Content: fmt.Sprintf(
					"Located in %s, we specialize in %s that exceeds expectations. Our commitment to quality and customer satisfaction makes us the preferred choice.",
					in.Location, in.Category),
			},
		},
		FAQs: []domain.FAQ{
			{
				Question: fmt.Sprintf("What makes %s special?", in.Name),
				Answer: fmt.Sprintf("Our %s features %s, making it perfect for %s.",
					in.Name, topFeatures, in.TargetAudience),
			},
			{
				Question: "How do I place an order?",
				Answer:   "You can contact us directly through our website or call our customer service team for immediate assistance.",
			},
			{
				Question: "Do you ship nationwide?",
				Answer: fmt.Sprintf(
					"Yes, we ship from our %s location to customers nationwide with fast and reliable delivery.",
					in.Location),
			},
		},
		CallToAction: fmt.Sprintf("Get Your %s Today", in.Name),
		JSONLDSchema: productSchema(
			in.Name,
			fmt.Sprintf("Premium %s with %s", in.Category, allFeatures),
			in.Category,
			"Premium Products",
		).toMap(),
	}
}
