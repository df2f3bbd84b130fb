package corpus

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// LoadDir reads every regular file in dir as one document. Directory entries
// come back sorted by name, so document order (and therefore document
// indexing) is deterministic across runs. The document ID is the file's base
// name.
func LoadDir(dir string) (Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory %s: %w", dir, err)
	}

	docs := make(Corpus, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading corpus file %s: %w", path, err)
		}
		docs = append(docs, Document{
			ID:     entry.Name(),
			Tokens: Tokenize(string(data)),
		})
	}

	slog.Debug("corpus loaded from directory",
		"dir", dir,
		"documents", len(docs),
		"tokens", docs.TotalTokens(),
	)
	return docs, nil
}
