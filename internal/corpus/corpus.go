// Package corpus loads document collections and tokenizes them for indexing.
//
// A corpus is an ordered, immutable snapshot: document order is fixed at load
// time and the integer position of a document is its identity inside the
// index. The string ID (file name or database key) exists only to map ranking
// results back to something human readable.
package corpus

import "strings"

// Document is one tokenized document with its stable external identifier.
type Document struct {
	ID     string
	Tokens []string
}

// Corpus is an ordered collection of documents.
type Corpus []Document

// Tokens returns the token slices positionally aligned with the corpus, in
// the shape the index builder consumes.
func (c Corpus) Tokens() [][]string {
	tokens := make([][]string, len(c))
	for i, doc := range c {
		tokens[i] = doc.Tokens
	}
	return tokens
}

// IDs returns the document identifiers positionally aligned with the corpus.
func (c Corpus) IDs() []string {
	ids := make([]string, len(c))
	for i, doc := range c {
		ids[i] = doc.ID
	}
	return ids
}

// TotalTokens returns the summed token count across all documents.
func (c Corpus) TotalTokens() int {
	total := 0
	for _, doc := range c {
		total += len(doc.Tokens)
	}
	return total
}

// Tokenize lowercases text and splits it on whitespace. Queries must be
// tokenized with the same function as documents or scores will miss matches
// on case differences.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
