package index

import "golang.org/x/sync/errgroup"

// buildTermStatsParallel splits the corpus into contiguous ranges, builds the
// term-frequency tables for each range on its own goroutine, and merges the
// per-range document-frequency partials. Workers write only to their own
// slice slots, and the merged counts are order-independent sums, so the final
// index is identical to a serial build.
func (idx *BM25) buildTermStatsParallel(workers int) map[string]int {
	if workers > idx.docCount {
		workers = idx.docCount
	}

	partials := make([]map[string]int, workers)
	chunk := (idx.docCount + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		hi := lo + chunk
		if hi > idx.docCount {
			hi = idx.docCount
		}
		g.Go(func() error {
			partials[w] = idx.buildTermStats(lo, hi)
			return nil
		})
	}
	// Workers never fail; Wait is used purely as a barrier.
	_ = g.Wait()

	docFreq := make(map[string]int)
	for _, partial := range partials {
		for term, df := range partial {
			docFreq[term] += df
		}
	}
	return docFreq
}
