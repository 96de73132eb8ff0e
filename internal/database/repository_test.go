package database_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/database"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
)

var productCols = []string{
	"id", "slug", "name", "category", "features", "keywords", "location", "target_audience",
	"seo_title", "meta_description", "intro_content", "sections", "faqs", "call_to_action", "json_ld_schema",
	"created_at", "updated_at",
}

var (
	created = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	updated = time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC)
)

func newRepo(t *testing.T) (*database.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return database.NewRepository(sqlx.NewDb(db, "postgres")), mock
}

func productValues(slug, name string) []driver.Value {
	return []driver.Value{
		int64(7), slug, name, "Household",
		[]byte(`["biodegradable","concentrated"]`), []byte(`["eco","clean"]`),
		"Portland", "eco-conscious families",
		"Title", "Meta", "Intro",
		[]byte(`[{"heading":"Key Features","content":"c"}]`),
		[]byte(`[{"question":"q","answer":"a"}]`),
		"CTA", []byte(`{"@type":"Product","offers":{"price":9.5}}`),
		created, updated,
	}
}

func sampleProduct() *domain.Product {
	p := domain.NewProduct(domain.ProductInput{
		Name:           "EcoClean Detergent",
		Category:       "Household",
		Features:       []string{"biodegradable", "concentrated"},
		Keywords:       []string{"eco", "clean"},
		Location:       "Portland",
		TargetAudience: "eco-conscious families",
	}, domain.ContentDocument{
		Slug:            "ecoclean-detergent",
		SEOTitle:        "Title",
		MetaDescription: "Meta",
		IntroContent:    "Intro",
		Sections:        []domain.Section{{Heading: "Key Features", Content: "c"}},
		FAQs:            []domain.FAQ{{Question: "q", Answer: "a"}},
		CallToAction:    "CTA",
		JSONLDSchema:    map[string]any{"@type": "Product"},
	})
	return &p
}

func TestRepository_Upsert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inserted     bool
		previousName any
	}{
		{name: "insert", inserted: true, previousName: nil},
		{name: "update", inserted: false, previousName: "EcoClean Detergent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, mock := newRepo(t)
			cols := append(append([]string{}, productCols...), "inserted", "previous_name")
			values := append(productValues("ecoclean-detergent", "EcoClean Detergent"), tt.inserted, tt.previousName)

			mock.ExpectQuery(`INSERT INTO products .* ON CONFLICT \(slug\) DO UPDATE SET`).
				WithArgs(
					"ecoclean-detergent", "EcoClean Detergent", "Household",
					`["biodegradable","concentrated"]`, `["eco","clean"]`,
					"Portland", "eco-conscious families",
					"Title", "Meta", "Intro",
					`[{"heading":"Key Features","content":"c"}]`,
					`[{"question":"q","answer":"a"}]`,
					"CTA", `{"@type":"Product"}`,
				).
				WillReturnRows(sqlmock.NewRows(cols).AddRow(values...))

			res, err := repo.Upsert(context.Background(), sampleProduct())
			require.NoError(t, err)

			assert.Equal(t, tt.inserted, res.Inserted)
			if tt.previousName != nil {
				assert.Equal(t, tt.previousName, res.PreviousName)
			} else {
				assert.Empty(t, res.PreviousName)
			}
			assert.Equal(t, int64(7), res.Product.ID)
			assert.Equal(t, []string{"biodegradable", "concentrated"}, res.Product.Features)
			assert.Equal(t, "Key Features", res.Product.Sections[0].Heading)
			assert.Equal(t, updated, res.Product.UpdatedAt)
		})
	}
}

func TestRepository_Upsert_Error(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`INSERT INTO products`).WillReturnError(sql.ErrConnDone)

	_, err := repo.Upsert(context.Background(), sampleProduct())
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestRepository_GetBySlug(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`SELECT .* FROM products WHERE slug = \$1`).
		WithArgs("ecoclean-detergent").
		WillReturnRows(sqlmock.NewRows(productCols).AddRow(productValues("ecoclean-detergent", "EcoClean Detergent")...))

	p, err := repo.GetBySlug(context.Background(), "ecoclean-detergent")
	require.NoError(t, err)

	assert.Equal(t, "EcoClean Detergent", p.Name)
	assert.Equal(t, "ecoclean-detergent", p.Slug)
	assert.Equal(t, []domain.FAQ{{Question: "q", Answer: "a"}}, p.FAQs)
	assert.Equal(t, map[string]any{"price": 9.5}, p.JSONLDSchema["offers"])
	assert.Equal(t, created, p.CreatedAt)
}

func TestRepository_GetBySlug_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`SELECT .* FROM products WHERE slug = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		limit  int
		offset int
		query  string
		args   []driver.Value
	}{
		{name: "all", query: `ORDER BY created_at DESC, id DESC$`},
		{name: "page", limit: 10, offset: 20, query: `ORDER BY created_at DESC, id DESC LIMIT \$1 OFFSET \$2`, args: []driver.Value{int64(10), int64(20)}},
		{name: "offset only", offset: 5, query: `ORDER BY created_at DESC, id DESC OFFSET \$1`, args: []driver.Value{int64(5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, mock := newRepo(t)
			rows := sqlmock.NewRows(productCols).
				AddRow(productValues("b", "B")...).
				AddRow(productValues("a", "A")...)

			expect := mock.ExpectQuery(tt.query)
			if len(tt.args) > 0 {
				expect = expect.WithArgs(tt.args...)
			}
			expect.WillReturnRows(rows)

			products, err := repo.List(context.Background(), tt.limit, tt.offset)
			require.NoError(t, err)
			require.Len(t, products, 2)
			assert.Equal(t, "b", products[0].Slug)
			assert.Equal(t, "a", products[1].Slug)
		})
	}
}

func TestRepository_DeleteBySlug(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`DELETE FROM products WHERE slug = \$1 RETURNING`).
		WithArgs("ecoclean-detergent").
		WillReturnRows(sqlmock.NewRows(productCols).AddRow(productValues("ecoclean-detergent", "EcoClean Detergent")...))

	p, err := repo.DeleteBySlug(context.Background(), "ecoclean-detergent")
	require.NoError(t, err)
	assert.Equal(t, "EcoClean Detergent", p.Name)
}

func TestRepository_DeleteBySlug_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`DELETE FROM products`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(productCols))

	_, err := repo.DeleteBySlug(context.Background(), "missing")
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestRepository_ListSitemapEntries(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`SELECT slug, updated_at FROM products ORDER BY updated_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "updated_at"}).
			AddRow("b", updated).
			AddRow("a", created))

	entries, err := repo.ListSitemapEntries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.SitemapEntry{
		{Slug: "b", UpdatedAt: updated},
		{Slug: "a", UpdatedAt: created},
	}, entries)
}

func TestRepository_ListSitemapEntries_Empty(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`SELECT slug, updated_at FROM products`).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "updated_at"}))

	entries, err := repo.ListSitemapEntries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	up, err := database.ParseDirection("up")
	require.NoError(t, err)
	assert.Equal(t, database.Up, up)

	down, err := database.ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, database.Down, down)

	_, err = database.ParseDirection("sideways")
	require.Error(t, err)
}
