// Package benchmark contains Go benchmarks for index construction and query
// ranking, measuring throughput and allocation behaviour.
package benchmark

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/searchworks/bm25-retrieval/internal/index"
)

// syntheticCorpus builds docs documents of roughly tokensPerDoc tokens drawn
// from a fixed vocabulary, seeded for reproducibility.
func syntheticCorpus(docs, tokensPerDoc int) [][]string {
	rng := rand.New(rand.NewSource(42))
	vocab := make([]string, 2000)
	for i := range vocab {
		vocab[i] = fmt.Sprintf("term%04d", i)
	}
	corpus := make([][]string, docs)
	for i := range corpus {
		doc := make([]string, tokensPerDoc)
		for j := range doc {
			doc[j] = vocab[rng.Intn(len(vocab))]
		}
		corpus[i] = doc
	}
	return corpus
}

// BenchmarkBuild measures serial index construction at various corpus sizes.
func BenchmarkBuild(b *testing.B) {
	for _, docs := range []int{100, 1000, 10000} {
		corpus := syntheticCorpus(docs, 200)
		b.Run(fmt.Sprintf("docs=%d", docs), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := index.Build(corpus); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkBuildParallel measures index construction with a worker pool.
func BenchmarkBuildParallel(b *testing.B) {
	corpus := syntheticCorpus(10000, 200)
	for _, workers := range []int{2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := index.Build(corpus, index.WithBuildConcurrency(workers)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkRank measures full-corpus ranking latency for short queries.
func BenchmarkRank(b *testing.B) {
	corpus := syntheticCorpus(10000, 200)
	idx, err := index.Build(corpus)
	if err != nil {
		b.Fatal(err)
	}
	query := []string{"term0001", "term0500", "term1999"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ranks := idx.Rank(query)
		_ = ranks
	}
}

// BenchmarkScoreQuery measures single-document scoring.
func BenchmarkScoreQuery(b *testing.B) {
	corpus := syntheticCorpus(1000, 200)
	idx, err := index.Build(corpus)
	if err != nil {
		b.Fatal(err)
	}
	query := []string{"term0001", "term0500", "term1999"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = idx.ScoreQuery(query, i%idx.DocCount())
	}
}
