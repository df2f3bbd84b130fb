// Command searchcli builds a BM25 index over a directory of text files and
// answers queries interactively from stdin.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/searchworks/bm25-retrieval/internal/corpus"
	"github.com/searchworks/bm25-retrieval/internal/index"
	"github.com/searchworks/bm25-retrieval/internal/searcher"
)

func main() {
	k1 := flag.Float64("k1", index.DefaultK1, "term-frequency saturation parameter")
	b := flag.Float64("b", index.DefaultB, "length-normalization strength")
	top := flag.Int("top", 5, "number of results to print per query")
	workers := flag.Int("workers", runtime.NumCPU(), "index build concurrency")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <text-file-directory>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *k1, *b, *top, *workers); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(dir string, k1, b float64, top, workers int) error {
	docs, err := corpus.LoadDir(dir)
	if err != nil {
		return err
	}

	start := time.Now()
	idx, err := index.Build(docs.Tokens(),
		index.WithK1(k1),
		index.WithB(b),
		index.WithBuildConcurrency(workers),
	)
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d documents (%d terms) in %s\n",
		idx.DocCount(), idx.VocabSize(), time.Since(start).Round(time.Millisecond))

	s, err := searcher.New(idx, docs.IDs())
	if err != nil {
		return err
	}

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("query> ")
		if !scanner.Scan() {
			break
		}
		result := s.Search(ctx, scanner.Text(), top)
		if len(result.Hits) == 0 {
			fmt.Println("no results")
			continue
		}
		for _, hit := range result.Hits {
			fmt.Printf("%s: %.4f\n", hit.DocID, hit.Score)
		}
		fmt.Println("---------------------")
	}
	return scanner.Err()
}
