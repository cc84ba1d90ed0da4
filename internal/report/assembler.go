// Package report assembles the final dashboard document: it drives the
// aggregators over the required government-postings source, attaches the
// optional market lenses, and combines metrics with the fixed narrative
// blocks and citation list.
//
// The required source failing fails the whole run; optional lenses degrade
// to disabled placeholders without configured credentials.
package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/workforce-signals/ai-jobs-pulse/internal/aggregate"
	"github.com/workforce-signals/ai-jobs-pulse/internal/classify"
	"github.com/workforce-signals/ai-jobs-pulse/internal/logger"
	"github.com/workforce-signals/ai-jobs-pulse/internal/models"
)

// preferredFamilies are the headline families shown on the by-family chart
// when present in the snapshot; missing slots are topped up by share.
var preferredFamilies = []string{"Data & Analytics", "Marketing", "Human Resources"}

const headlineFamilyCount = 3

// LensProvider produces one optional market-lens snapshot. Implementations
// must return a disabled placeholder, not an error, when credentials are
// absent.
type LensProvider interface {
	AdzunaSnapshot(ctx context.Context) (*models.AdzunaSnapshot, error)
	OnetSnapshot(ctx context.Context) (*models.OnetSnapshot, error)
}

// Assembler builds one report per run.
type Assembler struct {
	postings           aggregate.PostingSource
	lenses             LensProvider
	monthsBack         int
	snapshotMonthsBack int
}

// New creates an Assembler over the required postings source and the
// optional lens provider.
func New(postings aggregate.PostingSource, lenses LensProvider, monthsBack, snapshotMonthsBack int) *Assembler {
	return &Assembler{
		postings:           postings,
		lenses:             lenses,
		monthsBack:         monthsBack,
		snapshotMonthsBack: snapshotMonthsBack,
	}
}

// Build runs the full pipeline and assembles the report document. Any
// failure of the required source aborts with an error and no document.
func (a *Assembler) Build(ctx context.Context, now time.Time, runID string) (*models.Report, error) {
	pulledOn := now.Format("2006-01-02")

	trend, rowsSeen, err := aggregate.MonthlyTrend(ctx, a.postings, now, a.monthsBack)
	if err != nil {
		return nil, fmt.Errorf("monthly trend failed: %w", err)
	}
	logger.Info("trend computed: %d windows, %d rows seen", len(trend), rowsSeen)

	familyShares, err := aggregate.FamilySnapshot(ctx, a.postings, now, a.snapshotMonthsBack)
	if err != nil {
		return nil, fmt.Errorf("family snapshot failed: %w", err)
	}

	split, err := aggregate.OutsideITSplit(ctx, a.postings, now, a.snapshotMonthsBack)
	if err != nil {
		return nil, fmt.Errorf("outside-IT split failed: %w", err)
	}

	familyLabels, familyValues := headlineFamilies(familyShares)

	trendLabels := make([]string, len(trend))
	trendValues := make([]float64, len(trend))
	for i, w := range trend {
		trendLabels[i] = w.Label
		trendValues[i] = round2(w.Share())
	}

	adzuna, err := a.lenses.AdzunaSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("adzuna lens failed: %w", err)
	}
	onet, err := a.lenses.OnetSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("onet lens failed: %w", err)
	}

	doc := &models.Report{
		LastUpdated: pulledOn,
		RunID:       runID,
		Takeaway: models.Takeaway{
			Headline:       headline,
			Subhead:        subhead,
			ExecutiveNotes: executiveNotes(pulledOn),
		},
		CoreSkills: coreSkills,
		Charts: models.Charts{
			AIMentionsTrend: models.Chart{
				Title:  trendChartTitle,
				Labels: trendLabels,
				Values: trendValues,
				Note:   trendChartNote(rowsSeen),
			},
			AIMentionsByFamily: models.Chart{
				Title:  familyChartTitle,
				Labels: familyLabels,
				Values: familyValues,
				Note:   familyChartNote,
			},
			AIOutsideITShare: models.Chart{
				Title:  outsideITChartTitle,
				Labels: []string{"Outside IT/CS", "IT/CS"},
				Values: []float64{float64(split.OutsidePct), float64(split.ITPct)},
				Note:   outsideITChartNote(split.TotalAI),
			},
		},
		JobFamilies: jobFamilies,
		MarketLenses: &models.MarketLenses{
			AdzunaUSSnapshot:    adzuna,
			OnetHotTechnologies: onet,
		},
		Sources: sources(pulledOn),
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("assembled report is invalid: %w", err)
	}
	return doc, nil
}

// headlineFamilies selects the chart families: preferred families that were
// observed, topped up to three by highest share. Equal shares resolve to the
// family seen first in the snapshot stream, keeping the pick reproducible.
// The "Other" bucket never appears on the chart.
func headlineFamilies(shares models.FamilyShares) ([]string, []float64) {
	available := make(models.FamilyShares, 0, len(shares))
	for _, fs := range shares {
		if fs.Family != classify.OtherFamily {
			available = append(available, fs)
		}
	}

	var labels []string
	picked := make(map[string]bool)
	for _, family := range preferredFamilies {
		if _, ok := available.Get(family); ok {
			labels = append(labels, family)
			picked[family] = true
		}
	}

	if len(labels) < headlineFamilyCount {
		remaining := make(models.FamilyShares, 0, len(available))
		for _, fs := range available {
			if !picked[fs.Family] {
				remaining = append(remaining, fs)
			}
		}
		sort.SliceStable(remaining, func(i, j int) bool {
			return remaining[i].Share > remaining[j].Share
		})
		for _, fs := range remaining {
			if len(labels) == headlineFamilyCount {
				break
			}
			labels = append(labels, fs.Family)
		}
	}

	values := make([]float64, len(labels))
	for i, family := range labels {
		share, _ := available.Get(family)
		values[i] = round1(share)
	}
	return labels, values
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
