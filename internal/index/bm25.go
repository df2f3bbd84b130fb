// Package index implements an immutable in-memory BM25 relevance index.
//
// The index is built once over a tokenized corpus and precomputes per-document
// term frequencies, document lengths, and global inverse document frequencies.
// After construction it is read-only and safe for concurrent use.
package index

import (
	"math"
	"sort"

	"github.com/searchworks/bm25-retrieval/internal/counter"
	"github.com/searchworks/bm25-retrieval/pkg/errors"
)

// Default BM25 parameters: k1 controls term-frequency saturation, b controls
// document-length normalization.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// DocScore pairs a document index with its BM25 score for a query.
type DocScore struct {
	DocIndex int     `json:"doc_index"`
	Score    float64 `json:"score"`
}

// BM25 holds the precomputed corpus statistics. Build takes ownership of the
// corpus slice; callers must not mutate it afterwards.
type BM25 struct {
	corpus       [][]string
	k1           float64
	b            float64
	docLengths   []int
	avgDocLength float64
	docCount     int
	termFreqs    []map[string]int
	idf          map[string]float64
}

// Build constructs a BM25 index over the given tokenized corpus. Each inner
// slice is one document's ordered tokens. An empty corpus is rejected with
// errors.ErrEmptyCorpus because the average document length is undefined.
func Build(corpus [][]string, opts ...Option) (*BM25, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	docCount := len(corpus)
	if docCount == 0 {
		return nil, errors.ErrEmptyCorpus
	}

	idx := &BM25{
		corpus:     corpus,
		k1:         o.k1,
		b:          o.b,
		docLengths: make([]int, docCount),
		docCount:   docCount,
		termFreqs:  make([]map[string]int, docCount),
		idf:        make(map[string]float64),
	}

	totalLength := 0
	for i, doc := range corpus {
		idx.docLengths[i] = len(doc)
		totalLength += len(doc)
	}
	idx.avgDocLength = float64(totalLength) / float64(docCount)

	var docFreq map[string]int
	if o.buildConcurrency > 1 {
		docFreq = idx.buildTermStatsParallel(o.buildConcurrency)
	} else {
		docFreq = idx.buildTermStats(0, docCount)
	}

	// idf(term) = ln((N - df + 0.5) / (df + 0.5)). Terms appearing in more
	// than half the corpus get a negative idf; this is intentional and not
	// clamped.
	n := float64(docCount)
	for term, df := range docFreq {
		idx.idf[term] = math.Log((n - float64(df) + 0.5) / (float64(df) + 0.5))
	}

	return idx, nil
}

// buildTermStats fills termFreqs for documents in [lo, hi) and returns the
// document-frequency partial for that range. Each document contributes at
// most once per distinct term.
func (idx *BM25) buildTermStats(lo, hi int) map[string]int {
	docFreq := make(map[string]int)
	for i := lo; i < hi; i++ {
		tally := counter.New[string]()
		for _, token := range idx.corpus[i] {
			tally.Increment(token)
		}
		tf := tally.Counts()
		idx.termFreqs[i] = tf
		for term := range tf {
			docFreq[term]++
		}
	}
	return docFreq
}

// Score returns the BM25 contribution of a single term to the given
// document. Unknown terms and out-of-range document indexes score 0.
func (idx *BM25) Score(term string, docIndex int) float64 {
	if docIndex < 0 || docIndex >= idx.docCount {
		return 0
	}
	tf := float64(idx.termFreqs[docIndex][term])
	if tf == 0 {
		return 0
	}
	idf := idx.idf[term]
	denom := tf + idx.k1*(1-idx.b+idx.b*(float64(idx.docLengths[docIndex])/idx.avgDocLength))
	return idf * (tf * (idx.k1 + 1)) / denom
}

// ScoreQuery returns the summed BM25 score of all query terms against the
// given document. Duplicate query terms each contribute independently.
func (idx *BM25) ScoreQuery(terms []string, docIndex int) float64 {
	score := 0.0
	for _, term := range terms {
		score += idx.Score(term, docIndex)
	}
	return score
}

// Rank scores every document against the query and returns all documents
// ordered by descending score. Equal scores are broken by ascending document
// index so that ranking output is deterministic. An empty query yields an
// all-zero ranking in corpus order.
func (idx *BM25) Rank(terms []string) []DocScore {
	ranks := make([]DocScore, idx.docCount)
	for i := range ranks {
		ranks[i] = DocScore{DocIndex: i, Score: idx.ScoreQuery(terms, i)}
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Score != ranks[j].Score {
			return ranks[i].Score > ranks[j].Score
		}
		return ranks[i].DocIndex < ranks[j].DocIndex
	})
	return ranks
}

// DocCount returns the number of documents in the corpus.
func (idx *BM25) DocCount() int {
	return idx.docCount
}

// DocLength returns the token count of the document at docIndex, 0 if out of
// range.
func (idx *BM25) DocLength(docIndex int) int {
	if docIndex < 0 || docIndex >= idx.docCount {
		return 0
	}
	return idx.docLengths[docIndex]
}

// AvgDocLength returns the mean document length in tokens.
func (idx *BM25) AvgDocLength() float64 {
	return idx.avgDocLength
}

// IDF returns the inverse document frequency of term, 0 if the term never
// appears in the corpus.
func (idx *BM25) IDF(term string) float64 {
	return idx.idf[term]
}

// VocabSize returns the number of distinct terms across the corpus.
func (idx *BM25) VocabSize() int {
	return len(idx.idf)
}
