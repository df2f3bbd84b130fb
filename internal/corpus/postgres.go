package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/searchworks/bm25-retrieval/pkg/postgres"
)

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// LoadPostgres reads (id, body) rows from the given table as the corpus.
// Rows are ordered by id so document indexing is deterministic across runs.
// The table and column names come from configuration, not user input, but are
// still validated as plain identifiers before interpolation.
func LoadPostgres(ctx context.Context, client *postgres.Client, table, idColumn, bodyColumn string) (Corpus, error) {
	for _, ident := range []string{table, idColumn, bodyColumn} {
		if !identPattern.MatchString(ident) {
			return nil, fmt.Errorf("invalid identifier %q in corpus source config", ident)
		}
	}

	query := fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s", idColumn, bodyColumn, table, idColumn)
	rows, err := client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying corpus table %s: %w", table, err)
	}
	defer rows.Close()

	var docs Corpus
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scanning corpus row: %w", err)
		}
		docs = append(docs, Document{
			ID:     id,
			Tokens: Tokenize(body),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating corpus rows: %w", err)
	}

	slog.Debug("corpus loaded from postgres",
		"table", table,
		"documents", len(docs),
		"tokens", docs.TotalTokens(),
	)
	return docs, nil
}
