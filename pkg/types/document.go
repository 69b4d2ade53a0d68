package types

import (
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"
)

// Document is one indexed content chunk. (url, chunk_index) is unique,
// upserts overwrite on conflict.
type Document struct {
	ID         string          `json:"id" db:"id"`
	Title      string          `json:"title" db:"title"`
	Content    string          `json:"content" db:"content"`
	URL        string          `json:"url" db:"url"`
	ChunkIndex int             `json:"chunk_index" db:"chunk_index"`
	Embedding  pgvector.Vector `json:"-" db:"embedding"`
	Metadata   json.RawMessage `json:"metadata" db:"metadata"`
	CreatedAt  int64           `json:"created_at" db:"created_at"`
	UpdatedAt  int64           `json:"updated_at" db:"updated_at"`
}

// MatchResult is one row returned by the similarity search.
// Similarity is cosine similarity, computed by pgvector in the store.
type MatchResult struct {
	Title      string  `json:"title" db:"title"`
	Content    string  `json:"content" db:"content"`
	URL        string  `json:"url" db:"url"`
	Similarity float64 `json:"similarity" db:"similarity"`
}

type GetDocumentsOptions struct {
	URL string
}

func (opts GetDocumentsOptions) Apply(query *sq.SelectBuilder) {
	if opts.URL != "" {
		*query = query.Where(sq.Eq{"url": opts.URL})
	}
}
