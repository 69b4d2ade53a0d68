package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"

	"github.com/jayline-services/assist/pkg/register"
	"github.com/jayline-services/assist/pkg/types"
)

func init() {
	register.RegisterFunc(RegisterKey{}, func(provider *Provider) {
		provider.stores.DocumentStore = NewDocumentStore(provider)
	})
}

func NewDocumentStore(provider SqlProviderAchieve) *DocumentStoreImpl {
	repo := &DocumentStoreImpl{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_DOCUMENT)
	repo.SetAllColumns(
		"id", "title", "content", "url", "chunk_index", "embedding", "metadata", "created_at", "updated_at",
	)
	return repo
}

type DocumentStoreImpl struct {
	CommonFields
}

// Upsert writes one chunk. A row with the same (url, chunk_index) is
// overwritten so reindexing never leaves duplicates behind.
func (s *DocumentStoreImpl) Upsert(ctx context.Context, data types.Document) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = time.Now().Unix()
	}
	if data.Metadata == nil {
		data.Metadata = []byte("{}")
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "title", "content", "url", "chunk_index", "embedding", "metadata", "created_at", "updated_at").
		Values(data.ID, data.Title, data.Content, data.URL, data.ChunkIndex, data.Embedding, data.Metadata, data.CreatedAt, data.UpdatedAt).
		Suffix(`ON CONFLICT (url, chunk_index) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding,
			metadata = EXCLUDED.metadata,
			updated_at = EXCLUDED.updated_at`)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentStoreImpl) BatchUpsert(ctx context.Context, datas []*types.Document) error {
	for _, data := range datas {
		if err := s.Upsert(ctx, *data); err != nil {
			return err
		}
	}
	return nil
}

// Match runs the cosine similarity search. pgvector's <=> operator yields
// cosine distance, so similarity is 1 minus that.
func (s *DocumentStoreImpl) Match(ctx context.Context, embedding pgvector.Vector, threshold float64, limit uint64) ([]types.MatchResult, error) {
	query := sq.Select("title", "content", "url").
		Column(sq.Expr("1 - (embedding <=> ?) AS similarity", embedding)).
		From(s.GetTable()).
		Where(sq.Expr("1 - (embedding <=> ?) >= ?", embedding, threshold)).
		OrderBy("similarity DESC").
		Limit(limit)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var result []types.MatchResult
	if err = s.GetReplica(ctx).Select(&result, queryString, args...); err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteAll wipes the index ahead of a full reindex.
func (s *DocumentStoreImpl) DeleteAll(ctx context.Context) error {
	query := sq.Delete(s.GetTable())

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentStoreImpl) List(ctx context.Context, opts types.GetDocumentsOptions, limit, offset uint64) ([]types.Document, error) {
	query := sq.Select(s.GetAllColumns()...).
		From(s.GetTable()).
		OrderBy("url", "chunk_index")

	if limit != types.NO_PAGINATION {
		query = query.Limit(limit).Offset(offset)
	}

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var data []types.Document
	if err = s.GetReplica(ctx).Select(&data, queryString, args...); err != nil {
		return nil, err
	}

	return data, nil
}

func (s *DocumentStoreImpl) Total(ctx context.Context, opts types.GetDocumentsOptions) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable())

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var data int64
	if err = s.GetReplica(ctx).Get(&data, queryString, args...); err != nil {
		return 0, err
	}

	return data, nil
}
