package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"businessbites/internal/ports"
)

// metaSelectors are tried in order; the first non-empty content attribute wins.
var metaSelectors = []string{
	`meta[property="og:image"]`,
	`meta[name="twitter:image"]`,
	`meta[itemprop="image"]`,
}

// OGImageResolver extracts a thumbnail URL from an article page's social
// metadata. Used to backfill rows stored without one.
type OGImageResolver struct {
	client *http.Client
	logger *slog.Logger
}

var _ ports.ImageResolver = (*OGImageResolver)(nil)

// NewOGImageResolver wires an HTTP client; the default has a 10s timeout.
func NewOGImageResolver(client *http.Client, logger *slog.Logger) *OGImageResolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &OGImageResolver{client: client, logger: logger}
}

// Resolve fetches pageURL and returns the first image URL advertised in its
// metadata, resolved against the page address.
func (r *OGImageResolver) Resolve(ctx context.Context, pageURL string) (string, error) {
	doc, err := r.fetchDocument(ctx, pageURL)
	if err != nil {
		return "", err
	}

	for _, selector := range metaSelectors {
		content, ok := doc.Find(selector).First().Attr("content")
		if ok && content != "" {
			return resolveReference(pageURL, content)
		}
	}

	return "", fmt.Errorf("no image metadata in %s", pageURL)
}

func (r *OGImageResolver) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "businessbites/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	return doc, nil
}

func resolveReference(pageURL, ref string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}

	target, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse image url: %w", err)
	}

	return base.ResolveReference(target).String(), nil
}
