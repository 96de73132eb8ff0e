// Package searchindex mirrors stored pages into an Elasticsearch index so
// other services can search them.
package searchindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
)

// DefaultIndex is used when no index name is configured.
const DefaultIndex = "seo_pages"

const requestTimeout = 5 * time.Second

const indexMapping = `{
  "mappings": {
    "properties": {
      "slug":             {"type": "keyword"},
      "name":             {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "category":         {"type": "keyword"},
      "keywords":         {"type": "keyword"},
      "location":         {"type": "keyword"},
      "seo_title":        {"type": "text"},
      "meta_description": {"type": "text"},
      "intro_content":    {"type": "text"},
      "updated_at":       {"type": "date"}
    }
  }
}`

// Document is the indexed view of a page.
type Document struct {
	Slug            string    `json:"slug"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Keywords        []string  `json:"keywords"`
	Location        string    `json:"location"`
	SEOTitle        string    `json:"seo_title"`
	MetaDescription string    `json:"meta_description"`
	IntroContent    string    `json:"intro_content"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewDocument projects a stored page.
func NewDocument(p *domain.Product) Document {
	return Document{
		Slug:            p.Slug,
		Name:            p.Name,
		Category:        p.Category,
		Keywords:        p.Keywords,
		Location:        p.Location,
		SEOTitle:        p.SEOTitle,
		MetaDescription: p.MetaDescription,
		IntroContent:    p.IntroContent,
		UpdatedAt:       p.UpdatedAt,
	}
}

// Indexer writes page documents keyed by slug.
type Indexer struct {
	client *es.Client
	index  string
	log    logger.Logger
}

// NewIndexer returns nil when client is nil; a nil Indexer ignores every call.
func NewIndexer(client *es.Client, index string, log logger.Logger) *Indexer {
	if client == nil {
		return nil
	}
	if index == "" {
		index = DefaultIndex
	}
	return &Indexer{client: client, index: index, log: log}
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (i *Indexer) EnsureIndex(ctx context.Context) error {
	if i == nil {
		return nil
	}

	res, err := i.client.Indices.Exists([]string{i.index}, i.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", i.index, err)
	}
	drain(res)
	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("check index %s: %s", i.index, res.Status())
	}

	res, err = i.client.Indices.Create(i.index,
		i.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
		i.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", i.index, err)
	}
	defer drain(res)
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", i.index, errorBody(res))
	}

	i.log.Info("Created search index", logger.String("index", i.index))
	return nil
}

// Index upserts the page document.
func (i *Indexer) Index(ctx context.Context, p *domain.Product) error {
	if i == nil {
		return nil
	}

	body, err := json.Marshal(NewDocument(p))
	if err != nil {
		return fmt.Errorf("marshal search document: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.client.Index(i.index, bytes.NewReader(body),
		i.client.Index.WithDocumentID(p.Slug),
		i.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index page %s: %w", p.Slug, err)
	}
	defer drain(res)
	if res.IsError() {
		return fmt.Errorf("index page %s: %s", p.Slug, errorBody(res))
	}
	return nil
}

// Delete removes the page document. A missing document is not an error.
func (i *Indexer) Delete(ctx context.Context, slug string) error {
	if i == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.client.Delete(i.index, slug, i.client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete page %s: %w", slug, err)
	}
	defer drain(res)
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete page %s: %s", slug, errorBody(res))
	}
	return nil
}

func errorBody(res *esapi.Response) string {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<10))
	return fmt.Sprintf("%s: %s", res.Status(), body)
}

func drain(res *esapi.Response) {
	if res == nil || res.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}
