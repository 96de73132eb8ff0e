// Package sitemap renders the sitemaps.org XML document for stored pages.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
)

// Namespace is the sitemaps.org 0.9 schema.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ContentType is the media type served for sitemaps.
const ContentType = "application/xml; charset=utf-8"

// ProductPathPrefix is where product pages live under the public site.
const ProductPathPrefix = "/products/"

const (
	rootChangeFreq    = "daily"
	rootPriority      = "1.0"
	productChangeFreq = "weekly"
	productPriority   = "0.8"
)

// URLSet is the <urlset> root element.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is one <url> entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Build returns the urlset for siteURL: the site root followed by one entry
// per page in the given order. The root's lastmod is the newest page update,
// or now when there are no pages.
func Build(siteURL string, entries []domain.SitemapEntry, now time.Time) URLSet {
	base := strings.TrimRight(siteURL, "/")

	rootMod := now
	if len(entries) > 0 {
		rootMod = entries[0].UpdatedAt
		for _, e := range entries[1:] {
			if e.UpdatedAt.After(rootMod) {
				rootMod = e.UpdatedAt
			}
		}
	}

	set := URLSet{XMLNS: Namespace, URLs: make([]URL, 0, len(entries)+1)}
	set.URLs = append(set.URLs, URL{
		Loc:        base,
		LastMod:    formatTime(rootMod),
		ChangeFreq: rootChangeFreq,
		Priority:   rootPriority,
	})
	for _, e := range entries {
		set.URLs = append(set.URLs, URL{
			Loc:        ProductURL(base, e.Slug),
			LastMod:    formatTime(e.UpdatedAt),
			ChangeFreq: productChangeFreq,
			Priority:   productPriority,
		})
	}
	return set
}

// Render builds and encodes the sitemap with an XML declaration.
func Render(siteURL string, entries []domain.SitemapEntry, now time.Time) ([]byte, error) {
	body, err := xml.MarshalIndent(Build(siteURL, entries, now), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// ProductURL is the public URL of the page for slug.
func ProductURL(siteURL, slug string) string {
	return strings.TrimRight(siteURL, "/") + ProductPathPrefix + url.PathEscape(slug)
}

// Location returns the sitemap location for a service reachable at baseURL.
func Location(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/sitemap.xml"
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
