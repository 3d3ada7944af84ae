package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"businessbites/internal/domain"
	"businessbites/internal/ports"
)

// FeedPageSize is the fixed page size of the feed and search endpoints.
const FeedPageSize = 12

// searchTermMinLen is the shortest accepted search term.
const searchTermMinLen = 2

// BiteServiceDeps wires the ordered backend chain and optional enrichment
// into the orchestration service.
type BiteServiceDeps struct {
	Sources []ports.RowSource
	Images  ports.ImageResolver
	Logger  *slog.Logger
	Now     func() time.Time
}

// BiteService runs the per-request pipeline: fetch rows through the fallback
// chain, group, paginate, summarize, assemble. It holds no per-request state.
type BiteService struct {
	sources []ports.RowSource
	images  ports.ImageResolver
	logger  *slog.Logger
	now     func() time.Time
}

// NewBiteService constructs the orchestration component.
func NewBiteService(deps BiteServiceDeps) *BiteService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &BiteService{
		sources: deps.Sources,
		images:  deps.Images,
		logger:  deps.Logger,
		now:     now,
	}
}

// MarketFeed serves one page of grouped bites for a market together with the
// rolling 48h digest. The digest runs over the ungrouped rows.
func (s *BiteService) MarketFeed(ctx context.Context, market string, page int) (*domain.BiteFeed, error) {
	rows, err := s.fetchRows(ctx, func(src ports.RowSource) ([]domain.ArticleRow, error) {
		return src.FetchRows(ctx, market)
	})
	if err != nil {
		return nil, err
	}

	aggregates := GroupRows(rows)
	slice, pagination := Paginate(aggregates, page, FeedPageSize)

	return &domain.BiteFeed{
		Articles:     slice,
		Market:       market,
		Pagination:   pagination,
		DailySummary: Summarize(rows, s.now()),
	}, nil
}

// Bite looks up a single aggregate by story id across the fallback chain and
// backfills a missing thumbnail from the article page when a resolver is
// configured. Enrichment failures are logged and ignored.
func (s *BiteService) Bite(ctx context.Context, newsID string) (*domain.ArticleAggregate, error) {
	rows, err := s.fetchRows(ctx, func(src ports.RowSource) ([]domain.ArticleRow, error) {
		return src.FetchRowsByID(ctx, newsID)
	})
	if err != nil {
		return nil, err
	}

	aggregates := GroupRows(rows)
	if len(aggregates) == 0 {
		return nil, &domain.NotFoundError{NewsID: newsID}
	}

	bite := aggregates[0]
	if bite.ThumbnailURL == "" && bite.SourceURL != "" && s.images != nil {
		thumb, resolveErr := s.images.Resolve(ctx, bite.SourceURL)
		if resolveErr != nil {
			s.debug("thumbnail resolution failed", "news_id", newsID, "error", resolveErr)
		} else {
			bite.ThumbnailURL = thumb
		}
	}

	return &bite, nil
}

// Search filters rows by a case-insensitive substring match on title and
// summary before grouping, then pages like the main feed. The search response
// carries no daily digest.
func (s *BiteService) Search(ctx context.Context, term, market string, page int) (*domain.BiteFeed, error) {
	term = strings.TrimSpace(term)
	if len(term) < searchTermMinLen {
		return nil, &domain.ValidationError{Field: "q", Reason: fmt.Sprintf("at least %d characters required", searchTermMinLen)}
	}

	rows, err := s.fetchRows(ctx, func(src ports.RowSource) ([]domain.ArticleRow, error) {
		return src.FetchRows(ctx, market)
	})
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	matched := make([]domain.ArticleRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Title), needle) ||
			strings.Contains(strings.ToLower(row.Summary), needle) {
			matched = append(matched, row)
		}
	}

	aggregates := GroupRows(matched)
	slice, pagination := Paginate(aggregates, page, FeedPageSize)

	return &domain.BiteFeed{
		Articles:   slice,
		Market:     market,
		Pagination: pagination,
	}, nil
}

// fetchRows tries the configured backends in order and returns the first
// successful row set. The failover is synchronous and immediate, bounded by
// the number of configured backends.
func (s *BiteService) fetchRows(ctx context.Context, fetch func(ports.RowSource) ([]domain.ArticleRow, error)) ([]domain.ArticleRow, error) {
	if len(s.sources) == 0 {
		return nil, fmt.Errorf("no row backends configured")
	}

	var lastErr error
	for _, src := range s.sources {
		rows, err := fetch(src)
		if err == nil {
			return rows, nil
		}

		lastErr = err
		s.warn("row backend failed, trying next", "backend", src.Name(), "error", err)
	}

	return nil, fmt.Errorf("all %d row backends failed: %w", len(s.sources), lastErr)
}

func (s *BiteService) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *BiteService) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
