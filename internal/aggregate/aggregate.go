// Package aggregate consumes job-record streams and accumulates them into the
// windowed statistics behind the dashboard charts: the monthly AI-mention
// trend, the per-family snapshot, and the inside/outside-IT split.
//
// Aggregators are driven sequentially: each fetch pass is drained to
// exhaustion before the next one starts, and a stream error aborts the whole
// aggregation with no partial result.
package aggregate

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/workforce-signals/ai-jobs-pulse/internal/classify"
	"github.com/workforce-signals/ai-jobs-pulse/internal/dates"
	"github.com/workforce-signals/ai-jobs-pulse/internal/logger"
	"github.com/workforce-signals/ai-jobs-pulse/internal/models"
)

// Stream is a lazy, finite, single-pass sequence of job records, following
// the bufio.Scanner pull pattern. A Stream is not restartable; obtain a fresh
// one from the source to re-iterate.
type Stream interface {
	Next() bool
	Record() models.JobRecord
	Err() error
}

// PostingSource produces a record stream for a date window. The end bound is
// exclusive. *usajobs.Client satisfies this contract.
type PostingSource interface {
	Postings(ctx context.Context, start, end time.Time) Stream
}

// MonthlyTrend partitions the monthsBack months preceding now's month into
// consecutive calendar-month windows (oldest first, the current partial month
// excluded), runs one fetch pass per window, and returns one WindowStats per
// month plus the total number of titled records seen across all windows.
func MonthlyTrend(ctx context.Context, src PostingSource, now time.Time, monthsBack int) ([]models.WindowStats, int, error) {
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var stats []models.WindowStats
	rowsSeen := 0

	cursor := dates.AddMonths(firstOfThisMonth, -monthsBack)
	for cursor.Before(firstOfThisMonth) {
		start, end := dates.MonthBounds(cursor)

		total, ai := 0, 0
		stream := src.Postings(ctx, start, end)
		for stream.Next() {
			rec := stream.Record()
			if !rec.HasTitle() {
				continue
			}
			total++
			rowsSeen++
			if classify.MatchesAI(rec.Title) {
				ai++
			}
		}
		if err := stream.Err(); err != nil {
			return nil, 0, fmt.Errorf("trend fetch for %s failed: %w", dates.Label(start), err)
		}

		stats = append(stats, models.WindowStats{Label: dates.Label(start), Total: total, AI: ai})
		logger.Debug("trend window %s: total=%d ai=%d", dates.Label(start), total, ai)
		cursor = end
	}

	return stats, rowsSeen, nil
}

// FamilySnapshot streams one snapshot month (monthsBack before now's month)
// and computes the AI share per job family. Families appear in first-seen
// stream order, which is the documented tie-break for headline selection.
func FamilySnapshot(ctx context.Context, src PostingSource, now time.Time, monthsBack int) (models.FamilyShares, error) {
	start, end := snapshotWindow(now, monthsBack)

	var order []string
	totals := make(map[string]int)
	aiTotals := make(map[string]int)

	stream := src.Postings(ctx, start, end)
	for stream.Next() {
		rec := stream.Record()
		if !rec.HasTitle() {
			continue
		}
		family := classify.Family(rec.Title)
		if _, seen := totals[family]; !seen {
			order = append(order, family)
		}
		totals[family]++
		if classify.MatchesAI(rec.Title) {
			aiTotals[family]++
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("family snapshot fetch failed: %w", err)
	}

	shares := make(models.FamilyShares, 0, len(order))
	for _, family := range order {
		share := 0.0
		if total := totals[family]; total > 0 {
			share = float64(aiTotals[family]) / float64(total) * 100.0
		}
		shares = append(shares, models.FamilyShare{Family: family, Share: share})
	}
	return shares, nil
}

// Split holds the inside/outside-IT breakdown of AI-flagged postings in the
// snapshot month. OutsidePct and ITPct sum to exactly 100 when TotalAI is
// nonzero: the outside share is rounded and the IT share is its complement.
type Split struct {
	OutsidePct int
	ITPct      int
	TotalAI    int
}

// OutsideITSplit streams the snapshot month and buckets every AI-flagged
// posting as IT/CS or not. Records carrying occupational series codes are
// classified by code membership; records without codes fall back to the
// title-based family rules.
func OutsideITSplit(ctx context.Context, src PostingSource, now time.Time, monthsBack int) (Split, error) {
	start, end := snapshotWindow(now, monthsBack)

	itAI, nonITAI := 0, 0

	stream := src.Postings(ctx, start, end)
	for stream.Next() {
		rec := stream.Record()
		if !rec.HasTitle() || !classify.MatchesAI(rec.Title) {
			continue
		}
		switch {
		case len(rec.Series) > 0 && classify.IsITSeries(rec.Series):
			itAI++
		case len(rec.Series) > 0:
			nonITAI++
		case classify.Family(rec.Title) == "IT/CS":
			itAI++
		default:
			nonITAI++
		}
	}
	if err := stream.Err(); err != nil {
		return Split{}, fmt.Errorf("outside-IT snapshot fetch failed: %w", err)
	}

	total := itAI + nonITAI
	if total == 0 {
		return Split{}, nil
	}

	outside := int(math.Round(float64(nonITAI) / float64(total) * 100))
	return Split{OutsidePct: outside, ITPct: 100 - outside, TotalAI: total}, nil
}

// snapshotWindow returns the bounds of the calendar month monthsBack months
// before now's month.
func snapshotWindow(now time.Time, monthsBack int) (time.Time, time.Time) {
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return dates.MonthBounds(dates.AddMonths(firstOfThisMonth, -monthsBack))
}
