package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"businessbites/internal/domain"
	"businessbites/internal/ports"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS business_bites_news (
	business_bites_news_id TEXT,
	analysis_id TEXT,
	title TEXT,
	summary TEXT,
	summary_short TEXT,
	market TEXT,
	sector TEXT,
	impact_score REAL,
	sentiment TEXT,
	link TEXT,
	url_to_image TEXT,
	thumbnail_url TEXT,
	published_at TEXT,
	source_system TEXT,
	author TEXT,
	alternative_sources TEXT,
	rank INTEGER,
	slno INTEGER PRIMARY KEY AUTOINCREMENT
);

CREATE TABLE IF NOT EXISTS watchlist (
	user_id TEXT,
	symbol TEXT,
	company TEXT,
	added_at TIMESTAMP,
	PRIMARY KEY (user_id, symbol)
);

CREATE TABLE IF NOT EXISTS read_later (
	user_id TEXT,
	business_bites_news_id TEXT,
	title TEXT,
	link TEXT,
	saved_at TIMESTAMP,
	PRIMARY KEY (user_id, business_bites_news_id)
);

CREATE TABLE IF NOT EXISTS feedback (
	id TEXT PRIMARY KEY,
	user_id TEXT,
	category TEXT,
	subject TEXT,
	message TEXT,
	created_at TIMESTAMP
);
`

// SQLite is the embedded development backend. It mirrors the Postgres table
// shapes so the two stores stay interchangeable behind the same ports.
type SQLite struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	logger  *slog.Logger
}

var (
	_ ports.RowSource           = (*SQLite)(nil)
	_ ports.WatchlistRepository = (*SQLite)(nil)
	_ ports.ReadLaterRepository = (*SQLite)(nil)
	_ ports.FeedbackRepository  = (*SQLite)(nil)
)

// NewSQLite opens (or creates) the database at path and bootstraps the schema.
func NewSQLite(path string, logger *slog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	return &SQLite{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger,
	}, nil
}

// Name identifies the backend inside the fallback chain.
func (s *SQLite) Name() string {
	return "sqlite"
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Ping reports backend reachability for health checks.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// FetchRows returns all rows for a market in story-then-rank order.
func (s *SQLite) FetchRows(ctx context.Context, market string) ([]domain.ArticleRow, error) {
	query := s.builder.
		Select(newsColumns...).
		From("business_bites_news").
		Where(sq.Eq{"market": market}).
		OrderBy("business_bites_news_id", "rank")

	return s.queryRows(ctx, query)
}

// FetchRowsByID returns every coverage row of one story.
func (s *SQLite) FetchRowsByID(ctx context.Context, newsID string) ([]domain.ArticleRow, error) {
	query := s.builder.
		Select(newsColumns...).
		From("business_bites_news").
		Where(sq.Eq{"business_bites_news_id": newsID}).
		OrderBy("rank")

	return s.queryRows(ctx, query)
}

// InsertRow seeds one article row; used by development tooling and tests.
func (s *SQLite) InsertRow(ctx context.Context, row domain.ArticleRow) error {
	sqlStr, args, err := s.builder.
		Insert("business_bites_news").
		Columns("business_bites_news_id", "analysis_id", "title", "summary", "summary_short",
			"market", "sector", "impact_score", "sentiment", "link", "url_to_image",
			"thumbnail_url", "published_at", "source_system", "author", "alternative_sources", "rank").
		Values(row.NewsID, row.AnalysisID, row.Title, row.Summary, row.SummaryShort,
			row.Market, row.Sector, row.ImpactScore, row.Sentiment, row.SourceURL, row.ImageURL,
			row.ThumbnailURL, row.PublishedAt, row.SourceSystem, row.Author, row.AltSources, row.Rank).
		ToSql()
	if err != nil {
		return fmt.Errorf("build news insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert news row: %w", err)
	}

	return nil
}

func (s *SQLite) queryRows(ctx context.Context, query sq.SelectBuilder) ([]domain.ArticleRow, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("build query: %w", err)}
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("query news: %w", err)}
	}
	defer rows.Close()

	var result []domain.ArticleRow
	for rows.Next() {
		row, scanErr := scanSQLiteNewsRow(rows)
		if scanErr != nil {
			return nil, &domain.InfrastructureError{Backend: s.Name(), Err: scanErr}
		}
		result = append(result, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("rows iteration: %w", rowsErr)}
	}

	return result, nil
}

func scanSQLiteNewsRow(rows *sql.Rows) (domain.ArticleRow, error) {
	var (
		row          domain.ArticleRow
		analysisID   sql.NullString
		summary      sql.NullString
		summaryShort sql.NullString
		sector       sql.NullString
		impact       sql.NullFloat64
		sentiment    sql.NullString
		link         sql.NullString
		image        sql.NullString
		thumbnail    sql.NullString
		publishedAt  sql.NullString
		sourceSystem sql.NullString
		author       sql.NullString
		altSources   sql.NullString
		rank         sql.NullInt64
		sequenceNo   sql.NullInt64
	)

	err := rows.Scan(
		&row.NewsID,
		&analysisID,
		&row.Title,
		&summary,
		&summaryShort,
		&row.Market,
		&sector,
		&impact,
		&sentiment,
		&link,
		&image,
		&thumbnail,
		&publishedAt,
		&sourceSystem,
		&author,
		&altSources,
		&rank,
		&sequenceNo,
	)
	if err != nil {
		return domain.ArticleRow{}, fmt.Errorf("scan news row: %w", err)
	}

	row.AnalysisID = analysisID.String
	row.Summary = summary.String
	row.SummaryShort = summaryShort.String
	row.Sector = sector.String
	row.ImpactScore = impact.Float64
	row.Sentiment = sentiment.String
	row.SourceURL = link.String
	row.ImageURL = image.String
	row.ThumbnailURL = thumbnail.String
	row.PublishedAt = publishedAt.String
	row.SourceSystem = sourceSystem.String
	row.Author = author.String
	row.AltSources = altSources.String
	row.Rank = int(rank.Int64)
	row.SequenceNo = sequenceNo.Int64

	return row, nil
}

// ListWatchlist returns the tickers a user follows, oldest first.
func (s *SQLite) ListWatchlist(ctx context.Context, userID string) ([]domain.WatchlistEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, symbol, company, added_at FROM watchlist WHERE user_id = ? ORDER BY added_at`, userID)
	if err != nil {
		return nil, &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("query watchlist: %w", err)}
	}
	defer rows.Close()

	var entries []domain.WatchlistEntry
	for rows.Next() {
		var entry domain.WatchlistEntry
		var company sql.NullString
		if err := rows.Scan(&entry.UserID, &entry.Symbol, &company, &entry.AddedAt); err != nil {
			return nil, &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("scan watchlist: %w", err)}
		}
		entry.Company = company.String
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("watchlist iteration: %w", rowsErr)}
	}

	return entries, nil
}

// AddWatchlist upserts one followed ticker.
func (s *SQLite) AddWatchlist(ctx context.Context, entry domain.WatchlistEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO watchlist (user_id, symbol, company, added_at) VALUES (?, ?, ?, ?)`,
		entry.UserID, entry.Symbol, entry.Company, entry.AddedAt)
	if err != nil {
		return &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("insert watchlist: %w", err)}
	}
	return nil
}

// RemoveWatchlist drops one followed ticker.
func (s *SQLite) RemoveWatchlist(ctx context.Context, userID, symbol string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM watchlist WHERE user_id = ? AND symbol = ?`, userID, symbol)
	if err != nil {
		return &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("delete watchlist: %w", err)}
	}
	return nil
}

// ListReadLater returns a user's bookmarks, newest first.
func (s *SQLite) ListReadLater(ctx context.Context, userID string) ([]domain.ReadLaterEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, business_bites_news_id, title, link, saved_at FROM read_later WHERE user_id = ? ORDER BY saved_at DESC`, userID)
	if err != nil {
		return nil, &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("query read-later: %w", err)}
	}
	defer rows.Close()

	var entries []domain.ReadLaterEntry
	for rows.Next() {
		var entry domain.ReadLaterEntry
		var title, link sql.NullString
		if err := rows.Scan(&entry.UserID, &entry.NewsID, &title, &link, &entry.SavedAt); err != nil {
			return nil, &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("scan read-later: %w", err)}
		}
		entry.Title = title.String
		entry.Link = link.String
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("read-later iteration: %w", rowsErr)}
	}

	return entries, nil
}

// AddReadLater bookmarks one bite, idempotently.
func (s *SQLite) AddReadLater(ctx context.Context, entry domain.ReadLaterEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO read_later (user_id, business_bites_news_id, title, link, saved_at) VALUES (?, ?, ?, ?, ?)`,
		entry.UserID, entry.NewsID, entry.Title, entry.Link, entry.SavedAt)
	if err != nil {
		return &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("insert read-later: %w", err)}
	}
	return nil
}

// RemoveReadLater drops one bookmark.
func (s *SQLite) RemoveReadLater(ctx context.Context, userID, newsID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM read_later WHERE user_id = ? AND business_bites_news_id = ?`, userID, newsID)
	if err != nil {
		return &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("delete read-later: %w", err)}
	}
	return nil
}

// CreateFeedback stores one submitted ticket.
func (s *SQLite) CreateFeedback(ctx context.Context, feedback domain.Feedback) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (id, user_id, category, subject, message, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		feedback.ID, feedback.UserID, feedback.Category, feedback.Subject, feedback.Message, feedback.CreatedAt)
	if err != nil {
		return &domain.InfrastructureError{Backend: s.Name(), Err: fmt.Errorf("insert feedback: %w", err)}
	}
	return nil
}
