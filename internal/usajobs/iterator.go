package usajobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/workforce-signals/ai-jobs-pulse/internal/models"
)

// searchResponse mirrors the Historic JOA response body: a page of records
// plus paging metadata carrying the continuation token and next-page link.
type searchResponse struct {
	Data   []rawRecord `json:"data"`
	Paging struct {
		Metadata struct {
			ContinuationToken string `json:"continuationToken"`
		} `json:"metadata"`
		Next string `json:"next"`
	} `json:"paging"`
}

type rawRecord struct {
	PositionTitle string        `json:"positionTitle"`
	JobCategories []jobCategory `json:"jobCategories"`
}

type jobCategory struct {
	Series seriesCode `json:"series"`
}

// seriesCode tolerates both string and numeric JSON encodings of an
// occupational series code.
type seriesCode string

func (s *seriesCode) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = seriesCode(strings.TrimSpace(str))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = seriesCode(num.String())
	return nil
}

// Iterator is a lazy, finite, single-pass stream of job records. It follows
// the bufio.Scanner pull pattern:
//
//	it := client.Postings(ctx, start, end)
//	for it.Next() {
//	    rec := it.Record()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
//
// Page requests are issued on demand as the stream is drained; callers never
// see the continuation-token protocol. Any transport error or non-2xx status
// terminates the stream with an error and no partial-result recovery.
type Iterator struct {
	ctx    context.Context
	client *Client
	start  time.Time
	end    time.Time

	token string
	buf   []models.JobRecord
	pos   int
	done  bool
	cur   models.JobRecord
	err   error
}

// Next advances to the next record, fetching further pages as needed.
// It returns false when the stream is exhausted or a fetch failed.
func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	for it.pos >= len(it.buf) {
		if it.done {
			return false
		}
		if err := it.fetchPage(); err != nil {
			it.err = err
			return false
		}
	}
	it.cur = it.buf[it.pos]
	it.pos++
	return true
}

// Record returns the record produced by the last successful call to Next.
func (it *Iterator) Record() models.JobRecord {
	return it.cur
}

// Err returns the first error encountered while streaming, if any.
func (it *Iterator) Err() error {
	return it.err
}

// fetchPage requests the next page and refills the buffer. The stream ends
// when the server omits either the next-page link or the continuation token.
func (it *Iterator) fetchPage() error {
	params := url.Values{}
	params.Set("StartPositionOpenDate", it.start.Format(dateFormat))
	params.Set("EndPositionOpenDate", it.end.Format(dateFormat))
	params.Set("PageSize", strconv.Itoa(it.client.pageSize))
	if it.token != "" {
		params.Set("ContinuationToken", it.token)
	}

	reqURL := it.client.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(it.ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build historicjoa request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := it.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("historicjoa request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("historicjoa returned status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode historicjoa response: %w", err)
	}

	it.buf = it.buf[:0]
	it.pos = 0
	for _, rec := range payload.Data {
		it.buf = append(it.buf, convertRecord(rec))
	}

	it.token = payload.Paging.Metadata.ContinuationToken
	if payload.Paging.Next == "" || it.token == "" {
		it.done = true
	}
	return nil
}

func convertRecord(rec rawRecord) models.JobRecord {
	var series []string
	for _, cat := range rec.JobCategories {
		if code := string(cat.Series); code != "" {
			series = append(series, code)
		}
	}
	return models.JobRecord{
		Title:  strings.TrimSpace(rec.PositionTitle),
		Series: series,
	}
}
