package usecase

import (
	"sort"
	"strconv"
	"time"

	"businessbites/internal/domain"
)

var publishedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// GroupRows folds flat rows sharing a story id into one aggregate per story.
// The first row seen for a key becomes the primary and contributes every field
// of the aggregate; every row, the primary included, appends one source link
// in encounter order. Aggregates come out sorted by published time, newest
// first, with unparseable timestamps sorting oldest.
func GroupRows(rows []domain.ArticleRow) []domain.ArticleAggregate {
	order := make([]string, 0, len(rows))
	byKey := make(map[string]*domain.ArticleAggregate, len(rows))

	for _, row := range rows {
		key := groupKey(row)

		agg, seen := byKey[key]
		if !seen {
			agg = &domain.ArticleAggregate{ArticleRow: row}
			byKey[key] = agg
			order = append(order, key)
		}

		agg.SourceLinks = append(agg.SourceLinks, domain.SourceLink{
			Title:       row.Title,
			Source:      row.SourceSystem,
			URL:         row.SourceURL,
			PublishedAt: row.PublishedAt,
			Rank:        row.Rank,
		})
	}

	aggregates := make([]domain.ArticleAggregate, 0, len(order))
	for _, key := range order {
		aggregates = append(aggregates, *byKey[key])
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		return parsePublishedAt(aggregates[i].PublishedAt).After(parsePublishedAt(aggregates[j].PublishedAt))
	})

	return aggregates
}

// groupKey resolves the two-key fallback: story id, then the secondary
// analysis id, then a synthetic singleton key so an unkeyed row never merges
// into another story.
func groupKey(row domain.ArticleRow) string {
	if row.NewsID != "" {
		return row.NewsID
	}
	if row.AnalysisID != "" {
		return row.AnalysisID
	}
	return "row:" + strconv.FormatInt(row.SequenceNo, 10)
}

// parsePublishedAt accepts the timestamp shapes the backends emit. Values
// that match none of them return the zero time, which sorts oldest and falls
// outside any summary window.
func parsePublishedAt(value string) time.Time {
	for _, layout := range publishedAtLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
