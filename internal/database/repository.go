package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
)

// ErrNotFound is returned when no page has the requested slug.
var ErrNotFound = errors.New("product not found")

const productColumns = `id, slug, name, category, features, keywords, location, target_audience,
		seo_title, meta_description, intro_content, sections, faqs, call_to_action, json_ld_schema,
		created_at, updated_at`

// Repository provides page persistence.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new repository instance
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// productRow is the products table as scanned by sqlx.
type productRow struct {
	ID              int64                   `db:"id"`
	Slug            string                  `db:"slug"`
	Name            string                  `db:"name"`
	Category        string                  `db:"category"`
	Features        JSONB[[]string]         `db:"features"`
	Keywords        JSONB[[]string]         `db:"keywords"`
	Location        string                  `db:"location"`
	TargetAudience  string                  `db:"target_audience"`
	SEOTitle        string                  `db:"seo_title"`
	MetaDescription string                  `db:"meta_description"`
	IntroContent    string                  `db:"intro_content"`
	Sections        JSONB[[]domain.Section] `db:"sections"`
	FAQs            JSONB[[]domain.FAQ]     `db:"faqs"`
	CallToAction    string                  `db:"call_to_action"`
	JSONLDSchema    JSONB[map[string]any]   `db:"json_ld_schema"`
	CreatedAt       time.Time               `db:"created_at"`
	UpdatedAt       time.Time               `db:"updated_at"`
	Inserted        bool                    `db:"inserted"`
	PreviousName    sql.NullString          `db:"previous_name"`
}

func (r *productRow) toProduct() *domain.Product {
	p := &domain.Product{
		ID: r.ID,
		ProductInput: domain.ProductInput{
			Name:           r.Name,
			Category:       r.Category,
			Features:       r.Features.V,
			Keywords:       r.Keywords.V,
			Location:       r.Location,
			TargetAudience: r.TargetAudience,
		}.Normalize(),
		ContentDocument: domain.ContentDocument{
			Slug:            r.Slug,
			SEOTitle:        r.SEOTitle,
			MetaDescription: r.MetaDescription,
			IntroContent:    r.IntroContent,
			Sections:        r.Sections.V,
			FAQs:            r.FAQs.V,
			CallToAction:    r.CallToAction,
			JSONLDSchema:    r.JSONLDSchema.V,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if p.Sections == nil {
		p.Sections = []domain.Section{}
	}
	if p.FAQs == nil {
		p.FAQs = []domain.FAQ{}
	}
	if p.JSONLDSchema == nil {
		p.JSONLDSchema = map[string]any{}
	}
	return p
}

// UpsertResult reports what Upsert did.
type UpsertResult struct {
	Product  *domain.Product
	Inserted bool
	// PreviousName is the name stored under the slug before an update.
	PreviousName string
}

// Upsert inserts the page or overwrites every field of the page that already
// has its slug.
func (r *Repository) Upsert(ctx context.Context, p *domain.Product) (*UpsertResult, error) {
	query := `
		WITH previous AS (
			SELECT name FROM products WHERE slug = $1
		)
		INSERT INTO products (slug, name, category, features, keywords, location, target_audience,
			seo_title, meta_description, intro_content, sections, faqs, call_to_action, json_ld_schema)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			features = EXCLUDED.features,
			keywords = EXCLUDED.keywords,
			location = EXCLUDED.location,
			target_audience = EXCLUDED.target_audience,
			seo_title = EXCLUDED.seo_title,
			meta_description = EXCLUDED.meta_description,
			intro_content = EXCLUDED.intro_content,
			sections = EXCLUDED.sections,
			faqs = EXCLUDED.faqs,
			call_to_action = EXCLUDED.call_to_action,
			json_ld_schema = EXCLUDED.json_ld_schema,
			updated_at = NOW()
		RETURNING ` + productColumns + `,
			(xmax = 0) AS inserted,
			(SELECT name FROM previous) AS previous_name
	`

	var row productRow
	err := r.db.QueryRowxContext(ctx, query,
		p.Slug, p.Name, p.Category,
		JSONB[[]string]{V: p.Features}, JSONB[[]string]{V: p.Keywords},
		p.Location, p.TargetAudience,
		p.SEOTitle, p.MetaDescription, p.IntroContent,
		JSONB[[]domain.Section]{V: p.Sections}, JSONB[[]domain.FAQ]{V: p.FAQs},
		p.CallToAction, JSONB[map[string]any]{V: p.JSONLDSchema},
	).StructScan(&row)
	if err != nil {
		return nil, fmt.Errorf("upsert product %q: %w", p.Slug, err)
	}

	return &UpsertResult{
		Product:      row.toProduct(),
		Inserted:     row.Inserted,
		PreviousName: row.PreviousName.String,
	}, nil
}

// GetBySlug returns the page stored under slug.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	var row productRow
	if err := r.db.GetContext(ctx, &row, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product %q: %w", slug, err)
	}
	return row.toProduct(), nil
}

// List returns pages newest first. A limit of zero or less returns every page.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, max(offset, 0))
	} else if offset > 0 {
		query += ` OFFSET $1`
		args = append(args, offset)
	}

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]*domain.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].toProduct()
	}
	return products, nil
}

// DeleteBySlug removes the page stored under slug and returns it.
func (r *Repository) DeleteBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `DELETE FROM products WHERE slug = $1 RETURNING ` + productColumns

	var row productRow
	if err := r.db.QueryRowxContext(ctx, query, slug).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete product %q: %w", slug, err)
	}
	return row.toProduct(), nil
}

// ListSitemapEntries returns every slug with its last update, newest first.
func (r *Repository) ListSitemapEntries(ctx context.Context) ([]domain.SitemapEntry, error) {
	entries := []domain.SitemapEntry{}
	query := `SELECT slug, updated_at FROM products ORDER BY updated_at DESC`

	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list sitemap entries: %w", err)
	}
	return entries, nil
}

// Ping checks connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
