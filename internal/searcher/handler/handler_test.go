package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/searchworks/bm25-retrieval/internal/index"
	"github.com/searchworks/bm25-retrieval/internal/searcher"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	idx, err := index.Build([][]string{
		{"the", "cat", "sat"},
		{"the", "dog", "ran"},
		{"fish", "swim"},
	})
	if err != nil {
		t.Fatal(err)
	}
	s, err := searcher.New(idx, []string{"cats.txt", "dogs.txt", "fish.txt"})
	if err != nil {
		t.Fatal(err)
	}
	stats := IndexStats{
		Documents:    idx.DocCount(),
		Vocabulary:   idx.VocabSize(),
		AvgDocLength: idx.AvgDocLength(),
	}
	return New(s, nil, nil, nil, stats, 5, 50)
}

func TestSearchEndpoint(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/search?q=fish", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var result searcher.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Hits) != 3 {
		t.Fatalf("got %d hits, want 3", len(result.Hits))
	}
	if result.Hits[0].DocID != "fish.txt" {
		t.Errorf("top hit = %q, want fish.txt", result.Hits[0].DocID)
	}
}

func TestSearchMissingQuery(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchLimitValidation(t *testing.T) {
	h := newTestHandler(t)
	for _, bad := range []string{"0", "-3", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/search?q=cat&limit="+bad, nil)
		rec := httptest.NewRecorder()
		h.Search(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%q: status = %d, want 400", bad, rec.Code)
		}
	}
}

func TestSearchLimitCapped(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/search?q=the&limit=9999", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var result searcher.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	// maxResults is 50, corpus has 3 docs; all three come back.
	if len(result.Hits) != 3 {
		t.Errorf("got %d hits, want 3", len(result.Hits))
	}
}

func TestStatsEndpoint(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	h.Stats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var stats IndexStats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.Documents != 3 {
		t.Errorf("Documents = %d, want 3", stats.Documents)
	}
	if stats.Vocabulary == 0 {
		t.Error("Vocabulary = 0, want > 0")
	}
}

func TestCacheEndpointsDisabled(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.CacheStats(rec, httptest.NewRequest(http.MethodGet, "/cache/stats", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("CacheStats status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.CacheInvalidate(rec, httptest.NewRequest(http.MethodPost, "/cache/invalidate", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("CacheInvalidate status = %d, want 503", rec.Code)
	}
}
