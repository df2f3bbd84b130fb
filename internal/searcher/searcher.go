// Package searcher turns raw query strings into ranked, truncated, named
// results backed by an immutable BM25 index.
package searcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/searchworks/bm25-retrieval/internal/corpus"
	"github.com/searchworks/bm25-retrieval/internal/index"
)

// Hit is one ranked document, mapped back to its external identifier.
type Hit struct {
	DocID    string  `json:"doc_id"`
	DocIndex int     `json:"doc_index"`
	Score    float64 `json:"score"`
}

// Result is the response to a single search query.
type Result struct {
	Query     string   `json:"query"`
	Terms     []string `json:"terms"`
	TotalDocs int      `json:"total_docs"`
	Hits      []Hit    `json:"hits"`
}

// Searcher ranks queries against a built index. It holds the document IDs
// positionally aligned with the corpus the index was built from.
type Searcher struct {
	idx    *index.BM25
	docIDs []string
	logger *slog.Logger
}

// New creates a Searcher. docIDs must be positionally aligned with the corpus
// the index was built from.
func New(idx *index.BM25, docIDs []string) (*Searcher, error) {
	if len(docIDs) != idx.DocCount() {
		return nil, fmt.Errorf("document IDs (%d) not aligned with index (%d documents)", len(docIDs), idx.DocCount())
	}
	return &Searcher{
		idx:    idx,
		docIDs: docIDs,
		logger: slog.Default().With("component", "searcher"),
	}, nil
}

// Search tokenizes the query the same way documents were tokenized, ranks
// every document, and returns the top hits. limit <= 0 returns the full
// ranking. A query with no tokens returns an empty hit list, not an error.
func (s *Searcher) Search(ctx context.Context, query string, limit int) *Result {
	terms := corpus.Tokenize(query)
	result := &Result{
		Query:     query,
		Terms:     terms,
		TotalDocs: s.idx.DocCount(),
	}
	if len(terms) == 0 {
		result.Hits = []Hit{}
		return result
	}

	ranks := s.idx.Rank(terms)
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}

	hits := make([]Hit, len(ranks))
	for i, r := range ranks {
		hits[i] = Hit{
			DocID:    s.docIDs[r.DocIndex],
			DocIndex: r.DocIndex,
			Score:    r.Score,
		}
	}
	result.Hits = hits
	return result
}

// Index exposes the underlying index for stats reporting.
func (s *Searcher) Index() *index.BM25 {
	return s.idx
}
