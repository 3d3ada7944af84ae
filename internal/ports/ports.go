package ports

import (
	"context"

	"businessbites/internal/domain"
)

// RowSource returns flat article rows from one storage backend. Rows keep the
// source's natural order; grouping happens in the use case layer.
type RowSource interface {
	Name() string
	FetchRows(ctx context.Context, market string) ([]domain.ArticleRow, error)
	FetchRowsByID(ctx context.Context, newsID string) ([]domain.ArticleRow, error)
}

// WatchlistRepository persists the tickers a user follows.
type WatchlistRepository interface {
	ListWatchlist(ctx context.Context, userID string) ([]domain.WatchlistEntry, error)
	AddWatchlist(ctx context.Context, entry domain.WatchlistEntry) error
	RemoveWatchlist(ctx context.Context, userID, symbol string) error
}

// ReadLaterRepository persists per-user article bookmarks.
type ReadLaterRepository interface {
	ListReadLater(ctx context.Context, userID string) ([]domain.ReadLaterEntry, error)
	AddReadLater(ctx context.Context, entry domain.ReadLaterEntry) error
	RemoveReadLater(ctx context.Context, userID, newsID string) error
}

// FeedbackRepository stores user-submitted tickets.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, feedback domain.Feedback) error
}

// ImageResolver extracts a thumbnail URL from an article page.
type ImageResolver interface {
	Resolve(ctx context.Context, pageURL string) (string, error)
}
