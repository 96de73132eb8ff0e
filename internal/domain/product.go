// Package domain holds the types shared by the generation pipeline, storage
// and the HTTP API.
package domain

import "time"

// ProductInput is the caller-supplied description of a product. Name must be
// non-empty and the lists must be present, though they may be empty. The
// other text fields may be blank.
type ProductInput struct {
	Name           string   `json:"name"            binding:"required"`
	Category       string   `json:"category"`
	Features       []string `json:"features"        binding:"required"`
	Keywords       []string `json:"keywords"        binding:"required"`
	Location       string   `json:"location"`
	TargetAudience string   `json:"target_audience"`
}

// Normalize returns a copy with nil lists replaced by empty ones.
func (p ProductInput) Normalize() ProductInput {
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Keywords == nil {
		p.Keywords = []string{}
	}
	return p
}

// Section is a headed block of page copy.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// FAQ is one question and answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ContentDocument is the generated page payload.
type ContentDocument struct {
	Slug            string         `json:"slug"`
	SEOTitle        string         `json:"seo_title"`
	MetaDescription string         `json:"meta_description"`
	IntroContent    string         `json:"intro_content"`
	Sections        []Section      `json:"sections"`
	FAQs            []FAQ          `json:"faqs"`
	CallToAction    string         `json:"call_to_action"`
	JSONLDSchema    map[string]any `json:"json_ld_schema"`
}

// Product is a stored page: the input it was generated from, the generated
// content and bookkeeping columns.
type Product struct {
	ID int64 `json:"id"`
	ProductInput
	ContentDocument
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProduct combines input and doc into an unsaved Product.
func NewProduct(input ProductInput, doc ContentDocument) Product {
	return Product{ProductInput: input.Normalize(), ContentDocument: doc}
}

// SitemapEntry is the minimal projection needed to list a page in a sitemap.
type SitemapEntry struct {
	Slug      string    `db:"slug"`
	UpdatedAt time.Time `db:"updated_at"`
}
