// Package usajobs provides access to the USAJOBS Historic JOA API, a public
// archive of past federal job announcements queryable by posting-open-date
// range. Results are paginated with an opaque continuation token; the client
// exposes them as a lazy, single-pass record stream.
package usajobs

import (
	"context"
	"net/http"
	"time"
)

// DefaultBaseURL is the public Historic JOA endpoint (no key required).
const DefaultBaseURL = "https://data.usajobs.gov/api/historicjoa"

// dateFormat is the MM-DD-YYYY layout the API expects for date-range params.
const dateFormat = "01-02-2006"

// Client queries the Historic JOA API.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

// NewClient creates a Historic JOA client. Each request is bounded by the
// given timeout; exceeding it fails the fetch in progress.
func NewClient(baseURL string, pageSize int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if pageSize <= 0 {
		pageSize = 1000
	}
	return &Client{
		baseURL:  baseURL,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Postings returns a lazy iterator over all announcements whose position
// open date falls in [start, end). The iterator drives further page requests
// as it is consumed and is not restartable; call Postings again to re-iterate.
func (c *Client) Postings(ctx context.Context, start, end time.Time) *Iterator {
	return &Iterator{
		ctx:    ctx,
		client: c,
		start:  start,
		end:    end,
	}
}
