package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jayline-services/assist/pkg/register"
	"github.com/jayline-services/assist/pkg/types"
)

func init() {
	register.RegisterFunc(RegisterKey{}, func(provider *Provider) {
		provider.stores.PostStore = NewPostStore(provider)
	})
}

func NewPostStore(provider SqlProviderAchieve) *PostStoreImpl {
	repo := &PostStoreImpl{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_POST)
	repo.SetAllColumns(
		"id", "title", "content", "status", "source_urls", "created_by", "metadata", "created_at",
	)
	return repo
}

type PostStoreImpl struct {
	CommonFields
}

func (s *PostStoreImpl) Create(ctx context.Context, data types.Post) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.Metadata == nil {
		data.Metadata = []byte("{}")
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "title", "content", "status", "source_urls", "created_by", "metadata", "created_at").
		Values(data.ID, data.Title, data.Content, data.Status, data.SourceURLs, data.CreatedBy, data.Metadata, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *PostStoreImpl) Get(ctx context.Context, id string) (*types.Post, error) {
	query := sq.Select(s.GetAllColumns()...).
		From(s.GetTable()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var data types.Post
	if err = s.GetReplica(ctx).Get(&data, queryString, args...); err != nil {
		return nil, err
	}

	return &data, nil
}

func (s *PostStoreImpl) List(ctx context.Context, opts types.ListPostOptions, limit, offset uint64) ([]types.Post, error) {
	query := sq.Select(s.GetAllColumns()...).
		From(s.GetTable()).
		OrderBy("created_at DESC")

	if limit != types.NO_PAGINATION {
		query = query.Limit(limit).Offset(offset)
	}

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var data []types.Post
	if err = s.GetReplica(ctx).Select(&data, queryString, args...); err != nil {
		return nil, err
	}

	return data, nil
}

func (s *PostStoreImpl) Total(ctx context.Context, opts types.ListPostOptions) (int64, error) {
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
