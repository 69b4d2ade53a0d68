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
		provider.stores.SuggestionStore = NewSuggestionStore(provider)
	})
}

func NewSuggestionStore(provider SqlProviderAchieve) *SuggestionStoreImpl {
	repo := &SuggestionStoreImpl{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_SUGGESTION)
	repo.SetAllColumns(
		"id", "question", "suggested_title", "suggested_content", "source_urls", "confidence", "status", "created_by", "created_at",
	)
	return repo
}

type SuggestionStoreImpl struct {
	CommonFields
}

func (s *SuggestionStoreImpl) Create(ctx context.Context, data types.Suggestion) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "question", "suggested_title", "suggested_content", "source_urls", "confidence", "status", "created_by", "created_at").
		Values(data.ID, data.Question, data.SuggestedTitle, data.SuggestedContent, data.SourceURLs, data.Confidence, data.Status, data.CreatedBy, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *SuggestionStoreImpl) Get(ctx context.Context, id string) (*types.Suggestion, error) {
	query := sq.Select(s.GetAllColumns()...).
		From(s.GetTable()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var data types.Suggestion
	if err = s.GetReplica(ctx).Get(&data, queryString, args...); err != nil {
		return nil, err
	}

	return &data, nil
}

func (s *SuggestionStoreImpl) List(ctx context.Context, opts types.ListSuggestionOptions, limit, offset uint64) ([]types.Suggestion, error) {
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

	var data []types.Suggestion
	if err = s.GetReplica(ctx).Select(&data, queryString, args...); err != nil {
		return nil, err
	}

	return data, nil
}

func (s *SuggestionStoreImpl) Total(ctx context.Context, opts types.ListSuggestionOptions) (int64, error) {
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

// UpdateStatusFromPending is the review state transition. The WHERE clause
// carries the pending guard so two concurrent reviews cannot both win.
func (s *SuggestionStoreImpl) UpdateStatusFromPending(ctx context.Context, id string, status types.SuggestionStatus) (bool, error) {
	query := sq.Update(s.GetTable()).
		Set("status", status).
		Where(sq.Eq{"id": id, "status": types.SUGGESTION_STATUS_PENDING})

	queryString, args, err := query.ToSql()
	if err != nil {
		return false, ErrorSqlBuild(err)
	}

	result, err := s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
