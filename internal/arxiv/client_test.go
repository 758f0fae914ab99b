package arxiv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSearch(t *testing.T) {
	var gotQuery, gotStart, gotMax, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = q.Get("search_query")
		gotStart = q.Get("start")
		gotMax = q.Get("max_results")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	c := NewClient(
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithContact("test@example.org"),
	)

	feed, err := c.Search(context.Background(), `all:"computer vision"`, 100, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotQuery != `all:"computer vision"` {
		t.Errorf("search_query = %q", gotQuery)
	}
	if gotStart != "100" || gotMax != "2" {
		t.Errorf("start=%q max_results=%q, want 100 and 2", gotStart, gotMax)
	}
	if !strings.Contains(gotUA, "test@example.org") {
		t.Errorf("User-Agent = %q, want contact email included", gotUA)
	}

	if feed.TotalResults != 2042 {
		t.Errorf("TotalResults = %d, want 2042", feed.TotalResults)
	}
	if len(feed.Entries) != 3 {
		t.Errorf("got %d entries, want 3", len(feed.Entries))
	}
}

func TestSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	if _, err := c.Search(context.Background(), "all:test", 0, 1); err == nil {
		t.Error("Search() = nil error on a 503 response")
	}
}

func TestSearchDefaultsPageSize(t *testing.T) {
	var gotMax string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMax = r.URL.Query().Get("max_results")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	if _, err := c.Search(context.Background(), "all:test", 0, 0); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotMax != "100" {
		t.Errorf("max_results = %q, want 100", gotMax)
	}
}
