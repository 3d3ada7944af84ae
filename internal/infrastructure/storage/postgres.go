package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"businessbites/internal/domain"
	"businessbites/internal/ports"
)

const (
	pgMaxConns        = int32(25)
	pgMinConns        = int32(2)
	pgMaxConnLifetime = time.Hour
	pgMaxConnIdleTime = 30 * time.Minute
)

var newsColumns = []string{
	"business_bites_news_id",
	"analysis_id",
	"title",
	"summary",
	"summary_short",
	"market",
	"sector",
	"impact_score",
	"sentiment",
	"link",
	"url_to_image",
	"thumbnail_url",
	"published_at",
	"source_system",
	"author",
	"alternative_sources",
	"rank",
	"slno",
}

// PgxPool is the pool surface the repository needs; pgxpool.Pool and the
// pgxmock pool both satisfy it.
type PgxPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// Postgres serves article rows and the watchlist/read-later/feedback tables
// from the production relational store.
type Postgres struct {
	pool    PgxPool
	builder sq.StatementBuilderType
	logger  *slog.Logger
}

var (
	_ ports.RowSource           = (*Postgres)(nil)
	_ ports.WatchlistRepository = (*Postgres)(nil)
	_ ports.ReadLaterRepository = (*Postgres)(nil)
	_ ports.FeedbackRepository  = (*Postgres)(nil)
)

// NewPostgres builds a pooled connection from a DSN. The pool is created
// lazily and not pinged here: an unreachable database must fail per request
// so the fallback chain can take over, not at startup.
func NewPostgres(dsn string, logger *slog.Logger) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	poolConfig.MaxConns = pgMaxConns
	poolConfig.MinConns = pgMinConns
	poolConfig.MaxConnLifetime = pgMaxConnLifetime
	poolConfig.MaxConnIdleTime = pgMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	return NewPostgresWithPool(pool, logger), nil
}

// NewPostgresWithPool wires an existing pool, real or mocked.
func NewPostgresWithPool(pool PgxPool, logger *slog.Logger) *Postgres {
	return &Postgres{
		pool:    pool,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  logger,
	}
}

// Name identifies the backend inside the fallback chain.
func (p *Postgres) Name() string {
	return "postgres"
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Ping reports backend reachability for health checks.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// FetchRows returns all rows for a market in story-then-rank order.
func (p *Postgres) FetchRows(ctx context.Context, market string) ([]domain.ArticleRow, error) {
	query := p.builder.
		Select(newsColumns...).
		From("business_bites_news").
		Where(sq.Eq{"market": market}).
		OrderBy("business_bites_news_id", "rank")

	return p.queryRows(ctx, query)
}

// FetchRowsByID returns every coverage row of one story.
func (p *Postgres) FetchRowsByID(ctx context.Context, newsID string) ([]domain.ArticleRow, error) {
	query := p.builder.
		Select(newsColumns...).
		From("business_bites_news").
		Where(sq.Eq{"business_bites_news_id": newsID}).
		OrderBy("rank")

	return p.queryRows(ctx, query)
}

func (p *Postgres) queryRows(ctx context.Context, query sq.SelectBuilder) ([]domain.ArticleRow, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("build query: %w", err)}
	}

	rows, err := p.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("query news: %w", err)}
	}
	defer rows.Close()

	var result []domain.ArticleRow
	for rows.Next() {
		row, scanErr := scanNewsRow(rows)
		if scanErr != nil {
			return nil, &domain.InfrastructureError{Backend: p.Name(), Err: scanErr}
		}
		result = append(result, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("rows iteration: %w", rowsErr)}
	}

	return result, nil
}

func scanNewsRow(rows pgx.Rows) (domain.ArticleRow, error) {
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
func (p *Postgres) ListWatchlist(ctx context.Context, userID string) ([]domain.WatchlistEntry, error) {
	sqlStr, args, err := p.builder.
		Select("user_id", "symbol", "company", "added_at").
		From("watchlist").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("added_at").
		ToSql()
	if err != nil {
		return nil, &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("build watchlist query: %w", err)}
	}

	rows, err := p.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("query watchlist: %w", err)}
	}
	defer rows.Close()

	var entries []domain.WatchlistEntry
	for rows.Next() {
		var entry domain.WatchlistEntry
		var company sql.NullString
		if err := rows.Scan(&entry.UserID, &entry.Symbol, &company, &entry.AddedAt); err != nil {
			return nil, &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("scan watchlist: %w", err)}
		}
		entry.Company = company.String
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("watchlist iteration: %w", rowsErr)}
	}

	return entries, nil
}

// AddWatchlist upserts one followed ticker.
func (p *Postgres) AddWatchlist(ctx context.Context, entry domain.WatchlistEntry) error {
	sqlStr, args, err := p.builder.
		Insert("watchlist").
		Columns("user_id", "symbol", "company", "added_at").
		Values(entry.UserID, entry.Symbol, entry.Company, entry.AddedAt).
		Suffix("ON CONFLICT (user_id, symbol) DO UPDATE SET company = EXCLUDED.company").
		ToSql()
	if err != nil {
		return &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("build watchlist insert: %w", err)}
	}

	if _, err := p.pool.Exec(ctx, sqlStr, args...); err != nil {
		return &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("insert watchlist: %w", err)}
	}

	return nil
}

// RemoveWatchlist drops one followed ticker.
func (p *Postgres) RemoveWatchlist(ctx context.Context, userID, symbol string) error {
	sqlStr, args, err := p.builder.
		Delete("watchlist").
		Where(sq.Eq{"user_id": userID, "symbol": symbol}).
		ToSql()
	if err != nil {
		return &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("build watchlist delete: %w", err)}
	}

	if _, err := p.pool.Exec(ctx, sqlStr, args...); err != nil {
		return &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("delete watchlist: %w", err)}
	}

	return nil
}

// ListReadLater returns a user's bookmarks, newest first.
func (p *Postgres) ListReadLater(ctx context.Context, userID string) ([]domain.ReadLaterEntry, error) {
	sqlStr, args, err := p.builder.
		Select("user_id", "business_bites_news_id", "title", "link", "saved_at").
		From("read_later").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("saved_at DESC").
		ToSql()
	if err != nil {
		return nil, &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("build read-later query: %w", err)}
	}

	rows, err := p.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("query read-later: %w", err)}
	}
	defer rows.Close()

	var entries []domain.ReadLaterEntry
	for rows.Next() {
		var entry domain.ReadLaterEntry
		var title, link sql.NullString
		if err := rows.Scan(&entry.UserID, &entry.NewsID, &title, &link, &entry.SavedAt); err != nil {
			return nil, &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("scan read-later: %w", err)}
		}
		entry.Title = title.String
		entry.Link = link.String
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("read-later iteration: %w", rowsErr)}
	}

	return entries, nil
}

// AddReadLater bookmarks one bite, idempotently.
func (p *Postgres) AddReadLater(ctx context.Context, entry domain.ReadLaterEntry) error {
	sqlStr, args, err := p.builder.
		Insert("read_later").
		Columns("user_id", "business_bites_news_id", "title", "link", "saved_at").
		Values(entry.UserID, entry.NewsID, entry.Title, entry.Link, entry.SavedAt).
		Suffix("ON CONFLICT (user_id, business_bites_news_id) DO NOTHING").
		ToSql()
	if err != nil {
		return &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("build read-later insert: %w", err)}
	}

	if _, err := p.pool.Exec(ctx, sqlStr, args...); err != nil {
		return &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("insert read-later: %w", err)}
	}

	return nil
}

// RemoveReadLater drops one bookmark.
func (p *Postgres) RemoveReadLater(ctx context.Context, userID, newsID string) error {
	sqlStr, args, err := p.builder.
		Delete("read_later").
		Where(sq.Eq{"user_id": userID, "business_bites_news_id": newsID}).
		ToSql()
	if err != nil {
		return &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("build read-later delete: %w", err)}
	}

	if _, err := p.pool.Exec(ctx, sqlStr, args...); err != nil {
		return &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("delete read-later: %w", err)}
	}

	return nil
}

// CreateFeedback stores one submitted ticket.
func (p *Postgres) CreateFeedback(ctx context.Context, feedback domain.Feedback) error {
	sqlStr, args, err := p.builder.
		Insert("feedback").
		Columns("id", "user_id", "category", "subject", "message", "created_at").
		Values(feedback.ID, feedback.UserID, feedback.Category, feedback.Subject, feedback.Message, feedback.CreatedAt).
		ToSql()
	if err != nil {
		return &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("build feedback insert: %w", err)}
	}

	if _, err := p.pool.Exec(ctx, sqlStr, args...); err != nil {
		return &domain.InfrastructureError{Backend: p.Name(), Err: fmt.Errorf("insert feedback: %w", err)}
	}

	return nil
}
