// Package adzuna provides the broader-market lens: a sampled snapshot of
// recent commercial job postings from the Adzuna search API. The API
// paginates by page number and authenticates with an app_id/app_key query
// pair; without configured credentials the lens is disabled and the run
// carries a placeholder instead.
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/workforce-signals/ai-jobs-pulse/internal/classify"
	"github.com/workforce-signals/ai-jobs-pulse/internal/logger"
	"github.com/workforce-signals/ai-jobs-pulse/internal/models"
)

// DefaultBaseURL is the Adzuna API root.
const DefaultBaseURL = "https://api.adzuna.com/v1/api"

// snapshotNote explains how to read the sampled lens.
const snapshotNote = "Adzuna snapshot is a sampled view of recent US postings (last N days, first pages). " +
	"It is designed as a directional market pulse alongside the government postings trend."

// DisabledSnapshot is the placeholder recorded when no credentials are
// configured. The run continues; only this lens degrades.
func DisabledSnapshot() *models.AdzunaSnapshot {
	return &models.AdzunaSnapshot{
		Enabled: false,
		Note:    "Adzuna keys not configured. Add ADZUNA_APP_ID and ADZUNA_APP_KEY secrets.",
	}
}

// Client queries the Adzuna job-search API.
type Client struct {
	baseURL    string
	appID      string
	appKey     string
	httpClient *http.Client
}

// NewClient creates an Adzuna client with the given credential pair.
func NewClient(baseURL, appID, appKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		appID:   appID,
		appKey:  appKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// searchPage mirrors one page of the Adzuna search response.
type searchPage struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title    string `json:"title"`
	Category struct {
		Label string `json:"label"`
	} `json:"category"`
}

// SnapshotParams bound the sampled slice: postings from the last WindowDays
// days, the first Pages pages, ResultsPerPage results each.
type SnapshotParams struct {
	Country        string
	WindowDays     int
	Pages          int
	ResultsPerPage int
}

// Snapshot pulls a representative slice of recent postings and aggregates it:
// total and AI-flagged counts, the top categories by posting count, and the
// top AI terms appearing in AI-flagged titles. An empty page ends the sample
// early; any HTTP failure aborts the snapshot.
func (c *Client) Snapshot(ctx context.Context, p SnapshotParams) (*models.AdzunaSnapshot, error) {
	totalSeen := 0
	aiSeen := 0
	categoryCounts := make(map[string]int)
	var categoryOrder []string
	termCounts := make(map[string]int)

	for page := 1; page <= p.Pages; page++ {
		results, err := c.searchPage(ctx, p, page)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			break
		}

		for _, job := range results {
			if job.Title == "" {
				continue
			}
			totalSeen++

			cat := job.Category.Label
			if cat == "" {
				cat = "Uncategorized"
			}
			if _, seen := categoryCounts[cat]; !seen {
				categoryOrder = append(categoryOrder, cat)
			}
			categoryCounts[cat]++

			if classify.MatchesAI(job.Title) {
				aiSeen++
				classify.CountMarketTerms(job.Title, termCounts)
			}
		}
		logger.Debug("adzuna page %d: %d results", page, len(results))
	}

	share := 0.0
	if totalSeen > 0 {
		share = math.Round(float64(aiSeen)/float64(totalSeen)*100.0*100) / 100
	}

	return &models.AdzunaSnapshot{
		Enabled:           true,
		WindowDays:        p.WindowDays,
		SampledPages:      p.Pages,
		SampledResults:    totalSeen,
		AIFlaggedResults:  aiSeen,
		AIShareInSample:   share,
		TopCategories:     topCategories(categoryCounts, categoryOrder, 6),
		TopAITermsInTitle: topTerms(termCounts, 8),
		Note:              snapshotNote,
	}, nil
}

func (c *Client) searchPage(ctx context.Context, p SnapshotParams, page int) ([]searchResult, error) {
	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("content-type", "application/json")
	params.Set("results_per_page", strconv.Itoa(p.ResultsPerPage))
	params.Set("max_days_old", strconv.Itoa(p.WindowDays))
	params.Set("sort_by", "date")

	reqURL := fmt.Sprintf("%s/jobs/%s/search/%d?%s", c.baseURL, p.Country, page, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build adzuna request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("adzuna returned status %d", resp.StatusCode)
	}

	var payload searchPage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode adzuna response: %w", err)
	}
	return payload.Results, nil
}

// topCategories ranks categories by count descending; equal counts keep
// first-seen order.
func topCategories(counts map[string]int, order []string, limit int) []models.NamedCount {
	ranked := make([]models.NamedCount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, models.NamedCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// topTerms ranks market terms by count descending; equal counts keep the
// dictionary order.
func topTerms(counts map[string]int, limit int) []models.TermCount {
	ranked := make([]models.TermCount, 0, len(counts))
	for _, term := range classify.MarketTerms {
		if n := counts[term]; n > 0 {
			ranked = append(ranked, models.TermCount{Term: term, Count: n})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
