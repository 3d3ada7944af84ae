package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"businessbites/internal/domain"
	"businessbites/internal/ports"
)

// stubSource is an in-memory RowSource that can be told to fail.
type stubSource struct {
	name string
	rows []domain.ArticleRow
	err  error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchRows(_ context.Context, market string) ([]domain.ArticleRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.ArticleRow, 0, len(s.rows))
	for _, row := range s.rows {
		if row.Market == market {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubSource) FetchRowsByID(_ context.Context, newsID string) ([]domain.ArticleRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.ArticleRow, 0, len(s.rows))
	for _, row := range s.rows {
		if row.NewsID == newsID {
			out = append(out, row)
		}
	}
	return out, nil
}

var _ ports.RowSource = (*stubSource)(nil)

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func usRows() []domain.ArticleRow {
	published := fixedNow().Add(-2 * time.Hour).Format(time.RFC3339)
	return []domain.ArticleRow{
		{NewsID: "n1", Title: "Fed holds rates", Summary: "rates steady", Market: "US", ImpactScore: 8.0, PublishedAt: published, SourceURL: "https://ex.example/n1"},
		{NewsID: "n1", Title: "Fed decision", Summary: "steady", Market: "US", ImpactScore: 7.0, PublishedAt: published},
		{NewsID: "n2", Title: "Chip rally", Summary: "semis up", Market: "US", ImpactScore: 9.0, PublishedAt: published},
	}
}

func TestMarketFeedFallbackChain(t *testing.T) {
	t.Parallel()

	broken := &stubSource{name: "postgres", err: &domain.InfrastructureError{Backend: "postgres", Err: errors.New("connection refused")}}
	healthy := &stubSource{name: "static", rows: usRows()}

	svc := NewBiteService(BiteServiceDeps{Sources: []ports.RowSource{broken, healthy}, Now: fixedNow})

	feed, err := svc.MarketFeed(context.Background(), "US", 1)
	if err != nil {
		t.Fatalf("expected fallback to serve, got %v", err)
	}

	if len(feed.Articles) != 2 {
		t.Fatalf("expected 2 grouped bites, got %d", len(feed.Articles))
	}
	if feed.Pagination.TotalArticles != 2 {
		t.Fatalf("total_articles must count stories, got %d", feed.Pagination.TotalArticles)
	}
	if feed.DailySummary == nil {
		t.Fatal("expected a daily summary")
	}
	// Digest runs over the 3 raw rows, not the 2 stories.
	if feed.DailySummary.ArticleCount != 3 {
		t.Fatalf("digest must count raw rows, got %d", feed.DailySummary.ArticleCount)
	}
	if feed.DailySummary.AvgImpactScore != 8.0 {
		t.Fatalf("expected avg 8.0, got %v", feed.DailySummary.AvgImpactScore)
	}
}

func TestMarketFeedAllBackendsFail(t *testing.T) {
	t.Parallel()

	first := &stubSource{name: "postgres", err: errors.New("down")}
	second := &stubSource{name: "sqlite", err: errors.New("locked")}

	svc := NewBiteService(BiteServiceDeps{Sources: []ports.RowSource{first, second}, Now: fixedNow})

	if _, err := svc.MarketFeed(context.Background(), "US", 1); err == nil {
		t.Fatal("expected an error after exhausting the chain")
	}
}

func TestBiteNotFound(t *testing.T) {
	t.Parallel()

	svc := NewBiteService(BiteServiceDeps{Sources: []ports.RowSource{&stubSource{name: "static", rows: usRows()}}, Now: fixedNow})

	_, err := svc.Bite(context.Background(), "missing")

	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.NewsID != "missing" {
		t.Fatalf("error must echo the id, got %s", notFound.NewsID)
	}
}

func TestBiteFound(t *testing.T) {
	t.Parallel()

	svc := NewBiteService(BiteServiceDeps{Sources: []ports.RowSource{&stubSource{name: "static", rows: usRows()}}, Now: fixedNow})

	bite, err := svc.Bite(context.Background(), "n1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bite.NewsID != "n1" {
		t.Fatalf("unexpected bite: %s", bite.NewsID)
	}
	if len(bite.SourceLinks) != 2 {
		t.Fatalf("expected both coverage rows as links, got %d", len(bite.SourceLinks))
	}
}

func TestSearchValidation(t *testing.T) {
	t.Parallel()

	svc := NewBiteService(BiteServiceDeps{Sources: []ports.RowSource{&stubSource{name: "static", rows: usRows()}}, Now: fixedNow})

	_, err := svc.Search(context.Background(), " f ", "US", 1)

	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSearchMatchesTitleAndSummary(t *testing.T) {
	t.Parallel()

	svc := NewBiteService(BiteServiceDeps{Sources: []ports.RowSource{&stubSource{name: "static", rows: usRows()}}, Now: fixedNow})

	feed, err := svc.Search(context.Background(), "FED", "US", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feed.Articles) != 1 {
		t.Fatalf("expected 1 matching story, got %d", len(feed.Articles))
	}
	if feed.DailySummary != nil {
		t.Fatal("search response must not carry a digest")
	}

	feed, err = svc.Search(context.Background(), "semis", "US", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feed.Articles) != 1 || feed.Articles[0].NewsID != "n2" {
		t.Fatalf("summary match failed: %+v", feed.Articles)
	}
}
