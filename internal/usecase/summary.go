package usecase

import (
	"math"
	"time"

	"businessbites/internal/domain"
)

// summaryWindow is the rolling lookback for the market digest. It is not
// midnight-aligned; a fixed 48h window smooths sparse-data markets.
const summaryWindow = 48 * time.Hour

const (
	positiveThreshold = 7.5
	negativeThreshold = 5.5
)

// Summarize computes the rolling-window digest over the pre-grouping row set,
// so duplicate coverage of one story counts multiple times: the digest tracks
// raw signal volume, not story count. Returns nil when the window is empty.
func Summarize(rows []domain.ArticleRow, now time.Time) *domain.DailySummary {
	cutoff := now.Add(-summaryWindow)

	count := 0
	sum := 0.0
	for _, row := range rows {
		ts := parsePublishedAt(row.PublishedAt)
		if ts.IsZero() || ts.Before(cutoff) {
			continue
		}
		count++
		sum += row.ImpactScore
	}

	if count == 0 {
		return nil
	}

	mean := sum / float64(count)

	return &domain.DailySummary{
		ArticleCount:   count,
		AvgImpactScore: math.Round(mean*10) / 10,
		Sentiment:      sentimentLabel(mean),
	}
}

// sentimentLabel buckets the unrounded mean. The band between the thresholds
// maps to neutral, and the lower bound itself is still neutral.
func sentimentLabel(mean float64) string {
	switch {
	case mean >= positiveThreshold:
		return "positive"
	case mean < negativeThreshold:
		return "negative"
	default:
		return "neutral"
	}
}
