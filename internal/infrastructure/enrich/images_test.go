package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveOGImage(t *testing.T) {
	t.Parallel()

	html := `<!doctype html>
	<html><head>
	  <meta property="og:image" content="/assets/story.jpg" />
	  <meta name="twitter:image" content="https://cdn.example.com/other.jpg" />
	</head><body>article</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	defer server.Close()

	resolver := NewOGImageResolver(server.Client(), nil)

	got, err := resolver.Resolve(context.Background(), server.URL+"/story")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// Relative og:image wins over twitter:image and resolves against the page.
	want := server.URL + "/assets/story.jpg"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestResolveTwitterFallback(t *testing.T) {
	t.Parallel()

	html := `<html><head>
	  <meta name="twitter:image" content="https://cdn.example.com/fallback.jpg" />
	</head></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(html))
	}))
	defer server.Close()

	resolver := NewOGImageResolver(server.Client(), nil)

	got, err := resolver.Resolve(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "https://cdn.example.com/fallback.jpg" {
		t.Fatalf("unexpected url: %s", got)
	}
}

func TestResolveNoMetadata(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>plain</title></head></html>`))
	}))
	defer server.Close()

	resolver := NewOGImageResolver(server.Client(), nil)

	if _, err := resolver.Resolve(context.Background(), server.URL); err == nil {
		t.Fatal("expected an error for a page without image metadata")
	}
}

func TestResolveNon200(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resolver := NewOGImageResolver(server.Client(), nil)

	if _, err := resolver.Resolve(context.Background(), server.URL); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}
