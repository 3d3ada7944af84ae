package usecase

import (
	"testing"
	"time"

	"businessbites/internal/domain"
)

var summaryNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func rowAt(offset time.Duration, impact float64) domain.ArticleRow {
	return domain.ArticleRow{
		PublishedAt: summaryNow.Add(offset).Format(time.RFC3339),
		ImpactScore: impact,
	}
}

func TestSummarizeEmptyWindow(t *testing.T) {
	t.Parallel()

	if got := Summarize(nil, summaryNow); got != nil {
		t.Fatalf("expected nil summary for no rows, got %+v", got)
	}

	stale := []domain.ArticleRow{
		rowAt(-49*time.Hour, 8.0),
		rowAt(-72*time.Hour, 9.0),
	}
	if got := Summarize(stale, summaryNow); got != nil {
		t.Fatalf("expected nil summary for stale rows, got %+v", got)
	}
}

func TestSummarizeAverageAndCount(t *testing.T) {
	t.Parallel()

	rows := []domain.ArticleRow{
		rowAt(-1*time.Hour, 8.0),
		rowAt(-47*time.Hour, 5.0),
		rowAt(-50*time.Hour, 1.0), // outside the window
		{PublishedAt: "not-a-date", ImpactScore: 9.9},
	}

	summary := Summarize(rows, summaryNow)
	if summary == nil {
		t.Fatal("expected a summary")
	}
	if summary.ArticleCount != 2 {
		t.Fatalf("expected 2 rows counted, got %d", summary.ArticleCount)
	}
	if summary.AvgImpactScore != 6.5 {
		t.Fatalf("expected avg 6.5, got %v", summary.AvgImpactScore)
	}
}

func TestSummarizeMissingImpactCountsAsZero(t *testing.T) {
	t.Parallel()

	rows := []domain.ArticleRow{
		rowAt(-1*time.Hour, 8.0),
		rowAt(-2*time.Hour, 0),
	}

	summary := Summarize(rows, summaryNow)
	if summary == nil {
		t.Fatal("expected a summary")
	}
	if summary.AvgImpactScore != 4.0 {
		t.Fatalf("expected avg 4.0, got %v", summary.AvgImpactScore)
	}
}

func TestSentimentBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		mean float64
		want string
	}{
		{7.5, "positive"},
		{7.499999, "neutral"},
		{5.500001, "neutral"},
		{5.5, "neutral"},
		{5.499999, "negative"},
		{2.0, "negative"},
		{9.0, "positive"},
	}

	for _, tc := range cases {
		if got := sentimentLabel(tc.mean); got != tc.want {
			t.Fatalf("mean %v: expected %s, got %s", tc.mean, tc.want, got)
		}
	}
}

func TestSummarizeSentimentFromRows(t *testing.T) {
	t.Parallel()

	rows := []domain.ArticleRow{
		rowAt(-1*time.Hour, 8.0),
		rowAt(-2*time.Hour, 7.0),
	}

	summary := Summarize(rows, summaryNow)
	if summary == nil {
		t.Fatal("expected a summary")
	}
	if summary.Sentiment != "positive" {
		t.Fatalf("avg 7.5 must read positive, got %s", summary.Sentiment)
	}
}
