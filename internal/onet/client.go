// Package onet provides the skills-taxonomy lens: occupation-linked hot
// technology signals from the O*NET Web Services v2 API. The API uses
// server-side HTTP Basic authentication; without configured credentials the
// lens is disabled and the run carries a placeholder instead.
//
// Lookups are isolated per occupation: a failed request is recorded as an
// inline error entry while the remaining occupations continue.
package onet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/workforce-signals/ai-jobs-pulse/internal/logger"
	"github.com/workforce-signals/ai-jobs-pulse/internal/models"
)

// DefaultBaseURL is the O*NET Web Services v2 online root.
const DefaultBaseURL = "https://api-v2.onetcenter.org/online"

// Occupation pairs an O*NET-SOC code with its display label.
type Occupation struct {
	Code  string
	Label string
}

// DefaultOccupations is the fixed occupation list surfaced on the dashboard.
var DefaultOccupations = []Occupation{
	{"15-2051.00", "Data Scientists"},
	{"15-1252.00", "Software Developers"},
	{"11-3021.00", "Computer and Information Systems Managers"},
	{"13-1111.00", "Management Analysts"},
}

const snapshotNote = "O*NET Hot Technologies provides standardized, occupation-linked technology signals published via the official O*NET Web Services API. " +
	"Percentages reflect the ratio of postings mentioning the technology to all postings linked to that occupation (as defined by O*NET)."

// DisabledSnapshot is the placeholder recorded when no credentials are
// configured. The run continues; only this lens degrades.
func DisabledSnapshot() *models.OnetSnapshot {
	return &models.OnetSnapshot{
		Enabled: false,
		Note:    "O*NET credentials not configured. Add ONET_USERNAME and ONET_PASSWORD secrets.",
	}
}

// Client queries the O*NET Web Services API with Basic authentication.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient creates an O*NET client with the given Basic-auth pair.
func NewClient(baseURL, username, password string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// hotTechResponse mirrors the hot_technology endpoint body.
type hotTechResponse struct {
	Example []struct {
		Title         string  `json:"title"`
		Percentage    float64 `json:"percentage"`
		InDemand      bool    `json:"in_demand"`
		HotTechnology bool    `json:"hot_technology"`
		Href          string  `json:"href"`
	} `json:"example"`
}

// HotTechnologies looks up the top-N hot technologies for every occupation
// in the list. A per-occupation failure becomes an inline error entry; the
// snapshot itself only fails if assembling requests is impossible.
func (c *Client) HotTechnologies(ctx context.Context, occupations []Occupation, topN int) *models.OnetSnapshot {
	results := make([]models.OccupationTech, 0, len(occupations))
	for _, occ := range occupations {
		entry := models.OccupationTech{OnetSoc: occ.Code, Occupation: occ.Label}

		techs, err := c.fetchHotTech(ctx, occ.Code, topN)
		if err != nil {
			logger.Warn("onet lookup for %s failed: %v", occ.Code, err)
			entry.Error = err.Error()
		} else {
			entry.HotTechnologies = techs
		}
		results = append(results, entry)
	}

	return &models.OnetSnapshot{
		Enabled:     true,
		Occupations: results,
		Note:        snapshotNote,
	}
}

func (c *Client) fetchHotTech(ctx context.Context, code string, topN int) ([]models.HotTechnology, error) {
	params := url.Values{}
	params.Set("start", "1")
	params.Set("end", strconv.Itoa(topN))
	params.Set("sort", "percentage")

	reqURL := fmt.Sprintf("%s/occupations/%s/hot_technology?%s", c.baseURL, url.PathEscape(code), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build onet request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("onet request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("onet returned status %d", resp.StatusCode)
	}

	var payload hotTechResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode onet response: %w", err)
	}

	techs := make([]models.HotTechnology, 0, len(payload.Example))
	for _, item := range payload.Example {
		techs = append(techs, models.HotTechnology{
			Title:         item.Title,
			Percentage:    item.Percentage,
			InDemand:      item.InDemand,
			HotTechnology: item.HotTechnology,
			Href:          item.Href,
		})
	}
	return techs, nil
}
