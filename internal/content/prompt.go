package content

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
)

// SystemInstruction accompanies every prompt.
const SystemInstruction = "You are an expert SEO content strategist. Always respond with valid JSON."

const promptTemplate = `You're an SEO content strategist creating a public-facing page for a product. Generate SEO-optimized content using this input:

- Product Name: %s
- Category: %s
- Keywords: %s
- Features: %s
- Location: %s
- Target Audience: %s

Generate a JSON response with the following structure:

%s

Make sure the content is engaging, keyword-optimized, and designed to rank well in search engines. Focus on the target audience and include the provided keywords naturally throughout the content.`

// BuildPrompt renders the generation request for in. The output structure is
// rendered from DocumentShape so the prompt and Validate cannot drift apart.
func BuildPrompt(in domain.ProductInput) string {
	example := DocumentShape.renderExample(
		productSchema(in.Name, "Product description", in.Category, "Your Brand Name"),
	)
	return fmt.Sprintf(promptTemplate,
		in.Name,
		in.Category,
		joinList(in.Keywords),
		joinList(in.Features),
		in.Location,
		in.TargetAudience,
		example,
	)
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}
