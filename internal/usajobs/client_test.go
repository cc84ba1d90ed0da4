package usajobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func page(titles []string, token, next string) map[string]any {
	data := make([]map[string]any, len(titles))
	for i, title := range titles {
		data[i] = map[string]any{"positionTitle": title}
	}
	return map[string]any{
		"data": data,
		"paging": map[string]any{
			"metadata": map[string]any{"continuationToken": token},
			"next":     next,
		},
	}
}

func TestPostings_FollowsContinuationToken(t *testing.T) {
	pages := []map[string]any{
		page([]string{"AI Specialist", "Data Analyst"}, "tok-1", "/api/historicjoa?page=2"),
		page([]string{"Marketing Coordinator"}, "tok-2", "/api/historicjoa?page=3"),
		// Final page: no continuation token, no next link.
		page([]string{"HR Assistant"}, "", ""),
	}

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("StartPositionOpenDate") != "03-01-2025" {
			t.Errorf("Expected StartPositionOpenDate=03-01-2025, got %s", query.Get("StartPositionOpenDate"))
		}
		if query.Get("EndPositionOpenDate") != "04-01-2025" {
			t.Errorf("Expected EndPositionOpenDate=04-01-2025, got %s", query.Get("EndPositionOpenDate"))
		}
		if query.Get("PageSize") != "1000" {
			t.Errorf("Expected PageSize=1000, got %s", query.Get("PageSize"))
		}

		// Pages after the first must carry the token from the previous page.
		if requests > 0 {
			want := pages[requests-1]["paging"].(map[string]any)["metadata"].(map[string]any)["continuationToken"]
			if got := query.Get("ContinuationToken"); got != want {
				t.Errorf("Expected ContinuationToken=%v, got %s", want, got)
			}
		} else if query.Has("ContinuationToken") {
			t.Error("First request must not carry a continuation token")
		}

		if requests >= len(pages) {
			t.Errorf("Unexpected request %d: pagination did not terminate", requests+1)
			http.Error(w, "no more pages", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(pages[requests])
		requests++
	}))
	defer server.Close()

	client := NewClient(server.URL, 1000, 60*time.Second)
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	var titles []string
	it := client.Postings(context.Background(), start, end)
	for it.Next() {
		titles = append(titles, it.Record().Title)
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iteration failed: %v", err)
	}

	want := []string{"AI Specialist", "Data Analyst", "Marketing Coordinator", "HR Assistant"}
	if len(titles) != len(want) {
		t.Fatalf("got %d records, want %d", len(titles), len(want))
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("record %d = %q, want %q", i, titles[i], want[i])
		}
	}
	if requests != 3 {
		t.Errorf("server saw %d requests, want 3", requests)
	}
}

func TestPostings_StopsWhenNextMissing(t *testing.T) {
	// A token with no next link also terminates the stream.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(page([]string{"Data Analyst"}, "tok-1", ""))
	}))
	defer server.Close()

	client := NewClient(server.URL, 500, 60*time.Second)
	it := client.Postings(context.Background(), time.Now().AddDate(0, -1, 0), time.Now())

	var count int
	for it.Next() {
		count++
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iteration failed: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d records, want 1", count)
	}
}

func TestPostings_NonSuccessStatusAbortsFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream failure", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 1000, 60*time.Second)
	it := client.Postings(context.Background(), time.Now().AddDate(0, -1, 0), time.Now())

	if it.Next() {
		t.Fatal("Next() should fail on non-2xx status")
	}
	if it.Err() == nil {
		t.Fatal("Err() should surface the fetch failure")
	}
}

func TestPostings_SeriesCodeDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Series codes appear both as strings and as bare numbers.
		_, _ = w.Write([]byte(`{
			"data": [
				{"positionTitle": "IT Specialist", "jobCategories": [{"series": "2210"}, {"series": 301}]},
				{"positionTitle": "  Economist  ", "jobCategories": []}
			],
			"paging": {"metadata": {"continuationToken": ""}, "next": ""}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 1000, 60*time.Second)
	it := client.Postings(context.Background(), time.Now().AddDate(0, -1, 0), time.Now())

	if !it.Next() {
		t.Fatalf("expected first record, got err %v", it.Err())
	}
	rec := it.Record()
	if len(rec.Series) != 2 || rec.Series[0] != "2210" || rec.Series[1] != "301" {
		t.Errorf("unexpected series decoding: %v", rec.Series)
	}

	if !it.Next() {
		t.Fatalf("expected second record, got err %v", it.Err())
	}
	if got := it.Record().Title; got != "Economist" {
		t.Errorf("title not trimmed: %q", got)
	}

	if it.Next() {
		t.Error("stream should be exhausted")
	}
}
