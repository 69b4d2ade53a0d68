package types

import (
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

const POST_STATUS_DRAFT = "draft"

// Post is an editorial draft, created by accepting a suggestion or by the
// blog draft agent. Publishing is handled elsewhere.
type Post struct {
	ID         string          `json:"id" db:"id"`
	Title      string          `json:"title" db:"title"`
	Content    string          `json:"content" db:"content"`
	Status     string          `json:"status" db:"status"`
	SourceURLs pq.StringArray  `json:"source_urls" db:"source_urls"`
	CreatedBy  string          `json:"created_by" db:"created_by"`
	Metadata   json.RawMessage `json:"metadata" db:"metadata"`
	CreatedAt  int64           `json:"created_at" db:"created_at"`
}

type ListPostOptions struct {
	Status    string
	CreatedBy string
}

func (opts ListPostOptions) Apply(query *sq.SelectBuilder) {
	if opts.Status != "" {
		*query = query.Where(sq.Eq{"status": opts.Status})
	}
	if opts.CreatedBy != "" {
		*query = query.Where(sq.Eq{"created_by": opts.CreatedBy})
	}
}
