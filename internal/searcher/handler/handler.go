// Package handler exposes the search API over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/searchworks/bm25-retrieval/internal/analytics"
	"github.com/searchworks/bm25-retrieval/internal/searcher"
	"github.com/searchworks/bm25-retrieval/internal/searcher/cache"
	pkgerrors "github.com/searchworks/bm25-retrieval/pkg/errors"
	"github.com/searchworks/bm25-retrieval/pkg/logger"
	"github.com/searchworks/bm25-retrieval/pkg/metrics"
)

// QueryRunner is the searcher surface the handler depends on.
type QueryRunner interface {
	Search(ctx context.Context, query string, limit int) *searcher.Result
}

// IndexStats reports the immutable corpus statistics of the running index.
type IndexStats struct {
	Documents    int     `json:"documents"`
	Vocabulary   int     `json:"vocabulary"`
	AvgDocLength float64 `json:"avg_doc_length"`
}

// Handler serves the search endpoints.
type Handler struct {
	runner       QueryRunner
	cache        *cache.QueryCache
	collector    *analytics.Collector
	metrics      *metrics.Metrics
	stats        IndexStats
	defaultLimit int
	maxResults   int
	logger       *slog.Logger
}

// New creates a Handler. cache, collector, and m may be nil, disabling the
// corresponding feature.
func New(runner QueryRunner, queryCache *cache.QueryCache, collector *analytics.Collector, m *metrics.Metrics, stats IndexStats, defaultLimit, maxResults int) *Handler {
	return &Handler{
		runner:       runner,
		cache:        queryCache,
		collector:    collector,
		metrics:      m,
		stats:        stats,
		defaultLimit: defaultLimit,
		maxResults:   maxResults,
		logger:       slog.Default().With("component", "search-handler"),
	}
}

// Search handles GET /search?q=<query>&limit=<n>.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	limit := h.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if parsed > h.maxResults {
			parsed = h.maxResults
		}
		limit = parsed
	}

	var result *searcher.Result
	var err error
	cacheHit := false

	if h.cache != nil {
		result, cacheHit, err = h.cache.GetOrCompute(ctx, query, limit, func() (*searcher.Result, error) {
			return h.runner.Search(ctx, query, limit), nil
		})
	} else {
		result = h.runner.Search(ctx, query, limit)
	}
	if err != nil {
		log.Error("search execution failed", "query", query, "error", err)
		h.observe("error", start, 0, false)
		h.writeError(w, pkgerrors.HTTPStatusCode(err), "search failed")
		return
	}

	latency := time.Since(start)
	outcome := "ok"
	if len(result.Hits) == 0 {
		outcome = "empty"
	}
	h.observe(outcome, start, len(result.Hits), cacheHit)

	log.Info("search completed",
		"query", query,
		"returned", len(result.Hits),
		"cache_hit", cacheHit,
		"latency_ms", latency.Milliseconds(),
	)
	if h.collector != nil {
		h.collector.Track(buildEvent(ctx, result, cacheHit, latency))
	}

	h.writeJSON(w, http.StatusOK, result)
}

// Stats handles GET /stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.stats)
}

// CacheStats handles GET /cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}

	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

// CacheInvalidate handles POST /cache/invalidate.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) observe(outcome string, start time.Time, returned int, cacheHit bool) {
	if h.metrics == nil {
		return
	}
	h.metrics.SearchQueriesTotal.WithLabelValues(outcome).Inc()
	h.metrics.SearchLatency.Observe(time.Since(start).Seconds())
	h.metrics.SearchResultsCount.Observe(float64(returned))
	if cacheHit {
		h.metrics.CacheHitsTotal.Inc()
	} else if outcome != "error" {
		h.metrics.CacheMissesTotal.Inc()
	}
}

func buildEvent(ctx context.Context, result *searcher.Result, cacheHit bool, latency time.Duration) analytics.SearchEvent {
	eventType := analytics.EventCacheMiss
	if cacheHit {
		eventType = analytics.EventCacheHit
	}
	topScore := 0.0
	if len(result.Hits) > 0 {
		topScore = result.Hits[0].Score
	} else {
		eventType = analytics.EventZeroResult
	}
	return analytics.SearchEvent{
		Type:      eventType,
		Query:     result.Query,
		Terms:     result.Terms,
		TotalDocs: result.TotalDocs,
		Returned:  len(result.Hits),
		TopScore:  topScore,
		LatencyMs: latency.Milliseconds(),
		CacheHit:  cacheHit,
		Timestamp: time.Now().UTC(),
		RequestID: logger.RequestID(ctx),
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
