// Command searchd builds a BM25 index over a configured corpus at startup
// and serves ranked-retrieval queries over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/searchworks/bm25-retrieval/internal/analytics"
	"github.com/searchworks/bm25-retrieval/internal/corpus"
	"github.com/searchworks/bm25-retrieval/internal/index"
	"github.com/searchworks/bm25-retrieval/internal/searcher"
	"github.com/searchworks/bm25-retrieval/internal/searcher/cache"
	"github.com/searchworks/bm25-retrieval/internal/searcher/handler"
	"github.com/searchworks/bm25-retrieval/pkg/config"
	"github.com/searchworks/bm25-retrieval/pkg/health"
	"github.com/searchworks/bm25-retrieval/pkg/kafka"
	"github.com/searchworks/bm25-retrieval/pkg/logger"
	"github.com/searchworks/bm25-retrieval/pkg/metrics"
	"github.com/searchworks/bm25-retrieval/pkg/middleware"
	"github.com/searchworks/bm25-retrieval/pkg/postgres"
	pkgredis "github.com/searchworks/bm25-retrieval/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg); err != nil {
		slog.Error("searchd failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	docs, err := loadCorpus(ctx, cfg)
	if err != nil {
		return err
	}

	buildStart := time.Now()
	idx, err := index.Build(docs.Tokens(),
		index.WithK1(cfg.Index.K1),
		index.WithB(cfg.Index.B),
		index.WithBuildConcurrency(cfg.Index.BuildConcurrency),
	)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	buildDuration := time.Since(buildStart)
	slog.Info("index built",
		"documents", idx.DocCount(),
		"vocabulary", idx.VocabSize(),
		"avg_doc_length", idx.AvgDocLength(),
		"duration", buildDuration,
	)

	s, err := searcher.New(idx, docs.IDs())
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		m.IndexBuildSeconds.Set(buildDuration.Seconds())
		m.IndexDocuments.Set(float64(idx.DocCount()))
		m.IndexTokens.Set(float64(docs.TotalTokens()))
		m.IndexVocabulary.Set(float64(idx.VocabSize()))
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownMetrics(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	checker := health.NewChecker()
	checker.Register("index", func(ctx context.Context) health.ComponentHealth {
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d documents", idx.DocCount()),
		}
	})

	var queryCache *cache.QueryCache
	if cfg.Redis.Addr != "" {
		redisClient, err := pkgredis.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, query caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			queryCache = cache.New(redisClient, cfg.Redis)
			checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
				if err := redisClient.Ping(ctx); err != nil {
					return health.ComponentHealth{Status: health.StatusDown, Message: err.Error()}
				}
				return health.ComponentHealth{Status: health.StatusUp}
			})
			slog.Info("query cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	var collector *analytics.Collector
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.AnalyticsTopic)
		defer producer.Close()
		collector = analytics.NewCollector(producer, 10000)
		collector.Start(ctx)
		defer collector.Close()
		slog.Info("query analytics enabled", "topic", cfg.Kafka.AnalyticsTopic)
	}

	h := handler.New(s, queryCache, collector, m, handler.IndexStats{
		Documents:    idx.DocCount(),
		Vocabulary:   idx.VocabSize(),
		AvgDocLength: idx.AvgDocLength(),
	}, cfg.Search.DefaultLimit, cfg.Search.MaxResults)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", h.Search)
	mux.HandleFunc("GET /stats", h.Stats)
	mux.HandleFunc("GET /cache/stats", h.CacheStats)
	mux.HandleFunc("POST /cache/invalidate", h.CacheInvalidate)
	mux.HandleFunc("GET /healthz", checker.LiveHandler())
	mux.HandleFunc("GET /readyz", checker.ReadyHandler())

	var root http.Handler = mux
	root = middleware.Timeout(cfg.Server.RequestTimeout)(root)
	if m != nil {
		root = middleware.Metrics(m)(root)
	}
	root = middleware.RequestID(root)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      root,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("search service listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// loadCorpus reads the corpus from the configured source.
func loadCorpus(ctx context.Context, cfg *config.Config) (corpus.Corpus, error) {
	if err := cfg.Corpus.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Corpus.Source {
	case config.CorpusSourcePostgres:
		client, err := postgres.New(cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connecting to corpus database: %w", err)
		}
		defer client.Close()
		return corpus.LoadPostgres(ctx, client, cfg.Corpus.Table, cfg.Corpus.IDColumn, cfg.Corpus.BodyColumn)
	default:
		return corpus.LoadDir(cfg.Corpus.Dir)
	}
}
