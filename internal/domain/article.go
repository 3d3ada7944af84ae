package domain

import "time"

// ArticleRow is one source record contributing to a synthesized bite.
// Several rows share a NewsID when multiple outlets cover the same story.
type ArticleRow struct {
	NewsID       string  `json:"business_bites_news_id"`
	AnalysisID   string  `json:"-"`
	Title        string  `json:"title"`
	Summary      string  `json:"summary"`
	SummaryShort string  `json:"summary_short"`
	Market       string  `json:"market"`
	Sector       string  `json:"sector"`
	ImpactScore  float64 `json:"impact_score"`
	Sentiment    string  `json:"sentiment"`
	SourceURL    string  `json:"link"`
	ImageURL     string  `json:"urlToImage"`
	ThumbnailURL string  `json:"thumbnail_url"`
	PublishedAt  string  `json:"published_at"`
	SourceSystem string  `json:"source_system"`
	Author       string  `json:"author"`
	AltSources   string  `json:"alternative_sources"`
	Rank         int     `json:"rank"`
	SequenceNo   int64   `json:"slno"`
}

// SourceLink is one contributing outlet's reference inside an aggregate.
type SourceLink struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Rank        int    `json:"rank"`
}

// ArticleAggregate is one user-facing bite: the first row seen for a story id
// plus one source link per contributing row, the first row included.
type ArticleAggregate struct {
	ArticleRow
	SourceLinks []SourceLink `json:"source_links"`
}

// PageResult describes the pagination envelope around a feed slice.
type PageResult struct {
	CurrentPage   int  `json:"current_page"`
	TotalPages    int  `json:"total_pages"`
	TotalArticles int  `json:"total_articles"`
	HasPrevious   bool `json:"has_previous"`
	HasNext       bool `json:"has_next"`
	PreviousPage  *int `json:"previous_page"`
	NextPage      *int `json:"next_page"`
}

// DailySummary is the rolling 48h digest for a market. A request with no rows
// inside the window carries no summary at all rather than a zero-filled one.
type DailySummary struct {
	ArticleCount   int     `json:"article_count"`
	AvgImpactScore float64 `json:"avg_impact_score"`
	Sentiment      string  `json:"sentiment"`
}

// BiteFeed is the response envelope for the feed and search endpoints.
type BiteFeed struct {
	Articles     []ArticleAggregate `json:"articles"`
	Market       string             `json:"market"`
	Pagination   PageResult         `json:"pagination"`
	DailySummary *DailySummary      `json:"daily_summary"`
}

// WatchlistEntry is one ticker a user follows.
type WatchlistEntry struct {
	UserID  string    `json:"user_id"`
	Symbol  string    `json:"symbol"`
	Company string    `json:"company"`
	AddedAt time.Time `json:"added_at"`
}

// ReadLaterEntry is one bookmarked bite.
type ReadLaterEntry struct {
	UserID  string    `json:"user_id"`
	NewsID  string    `json:"business_bites_news_id"`
	Title   string    `json:"title"`
	Link    string    `json:"link"`
	SavedAt time.Time `json:"saved_at"`
}

// Feedback is one user-submitted ticket.
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Category  string    `json:"category"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
