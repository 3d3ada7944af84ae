package usecase

import (
	"testing"

	"businessbites/internal/domain"
)

func TestGroupRowsDistinctKeys(t *testing.T) {
	t.Parallel()

	rows := []domain.ArticleRow{
		{NewsID: "1", Title: "A", PublishedAt: "2024-01-02", Rank: 1, SourceSystem: "reuters", SourceURL: "https://r.example/a"},
		{NewsID: "1", Title: "B", PublishedAt: "2024-01-02", Rank: 2, SourceSystem: "bloomberg", SourceURL: "https://b.example/b"},
		{NewsID: "2", Title: "C", PublishedAt: "2024-01-03", Rank: 1, SourceSystem: "ft", SourceURL: "https://f.example/c"},
	}

	aggregates := GroupRows(rows)

	if len(aggregates) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(aggregates))
	}

	// Newest story first.
	if aggregates[0].NewsID != "2" {
		t.Fatalf("expected story 2 first, got %s", aggregates[0].NewsID)
	}

	story1 := aggregates[1]
	if story1.NewsID != "1" {
		t.Fatalf("expected story 1 second, got %s", story1.NewsID)
	}
	if len(story1.SourceLinks) != 2 {
		t.Fatalf("expected 2 source links, got %d", len(story1.SourceLinks))
	}

	// The primary keeps the first row's fields and is its own first link.
	if story1.Title != "A" {
		t.Fatalf("primary should be first row encountered, got title %s", story1.Title)
	}
	if story1.SourceLinks[0].Source != "reuters" || story1.SourceLinks[1].Source != "bloomberg" {
		t.Fatalf("source links out of encounter order: %+v", story1.SourceLinks)
	}
}

func TestGroupRowsSourceLinkCompleteness(t *testing.T) {
	t.Parallel()

	rows := []domain.ArticleRow{
		{NewsID: "x", PublishedAt: "2024-03-01T10:00:00Z"},
		{NewsID: "y", PublishedAt: "2024-03-01T11:00:00Z"},
		{NewsID: "x", PublishedAt: "2024-03-01T09:00:00Z"},
		{NewsID: "x", PublishedAt: "2024-03-01T08:00:00Z"},
	}

	counts := map[string]int{}
	for _, row := range rows {
		counts[row.NewsID]++
	}

	for _, agg := range GroupRows(rows) {
		if len(agg.SourceLinks) != counts[agg.NewsID] {
			t.Fatalf("story %s: expected %d links, got %d", agg.NewsID, counts[agg.NewsID], len(agg.SourceLinks))
		}
	}
}

func TestGroupRowsKeyFallback(t *testing.T) {
	t.Parallel()

	rows := []domain.ArticleRow{
		{AnalysisID: "an-1", Title: "secondary keyed", PublishedAt: "2024-01-01"},
		{AnalysisID: "an-1", Title: "same secondary", PublishedAt: "2024-01-01"},
		{SequenceNo: 7, Title: "orphan", PublishedAt: "2024-01-01"},
		{SequenceNo: 8, Title: "another orphan", PublishedAt: "2024-01-01"},
	}

	aggregates := GroupRows(rows)

	// Two secondary-keyed rows merge; unkeyed rows stay singletons.
	if len(aggregates) != 3 {
		t.Fatalf("expected 3 aggregates, got %d", len(aggregates))
	}
}

func TestGroupRowsUnparseableTimestampSortsOldest(t *testing.T) {
	t.Parallel()

	rows := []domain.ArticleRow{
		{NewsID: "bad", PublishedAt: "yesterday-ish"},
		{NewsID: "good", PublishedAt: "2020-01-01"},
	}

	aggregates := GroupRows(rows)

	if aggregates[len(aggregates)-1].NewsID != "bad" {
		t.Fatalf("unparseable timestamp should sort last, got order %s, %s",
			aggregates[0].NewsID, aggregates[1].NewsID)
	}
}

func TestGroupRowsEmpty(t *testing.T) {
	t.Parallel()

	if got := GroupRows(nil); len(got) != 0 {
		t.Fatalf("expected no aggregates, got %d", len(got))
	}
}
