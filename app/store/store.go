package store

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/jayline-services/assist/pkg/sqlstore"
	"github.com/jayline-services/assist/pkg/types"
)

// DocumentStore holds the indexed page chunks and their embeddings.
type DocumentStore interface {
	sqlstore.SqlCommons
	Upsert(ctx context.Context, data types.Document) error
	BatchUpsert(ctx context.Context, datas []*types.Document) error
	// Match runs a cosine similarity search against the stored embeddings and
	// returns rows at or above threshold, best first.
	Match(ctx context.Context, embedding pgvector.Vector, threshold float64, limit uint64) ([]types.MatchResult, error)
	DeleteAll(ctx context.Context) error
	List(ctx context.Context, opts types.GetDocumentsOptions, limit, offset uint64) ([]types.Document, error)
	Total(ctx context.Context, opts types.GetDocumentsOptions) (int64, error)
}

type SuggestionStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Suggestion) error
	Get(ctx context.Context, id string) (*types.Suggestion, error)
	List(ctx context.Context, opts types.ListSuggestionOptions, limit, offset uint64) ([]types.Suggestion, error)
	Total(ctx context.Context, opts types.ListSuggestionOptions) (int64, error)
	// UpdateStatusFromPending moves a suggestion out of pending. It reports
	// false when the row is missing or already reviewed, without error.
	UpdateStatusFromPending(ctx context.Context, id string, status types.SuggestionStatus) (bool, error)
}

type PostStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Post) error
	Get(ctx context.Context, id string) (*types.Post, error)
	List(ctx context.Context, opts types.ListPostOptions, limit, offset uint64) ([]types.Post, error)
	Total(ctx context.Context, opts types.ListPostOptions) (int64, error)
}
