package types

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

type SuggestionStatus string

const (
	SUGGESTION_STATUS_PENDING  SuggestionStatus = "pending"
	SUGGESTION_STATUS_ACCEPTED SuggestionStatus = "accepted"
	SUGGESTION_STATUS_REJECTED SuggestionStatus = "rejected"
)

func (s SuggestionStatus) Valid() bool {
	switch s {
	case SUGGESTION_STATUS_PENDING, SUGGESTION_STATUS_ACCEPTED, SUGGESTION_STATUS_REJECTED:
		return true
	}
	return false
}

// Suggestion is a visitor-submitted article proposal. Status moves from
// pending to accepted or rejected exactly once, both terminal.
type Suggestion struct {
	ID               string           `json:"id" db:"id"`
	Question         string           `json:"question" db:"question"`
	SuggestedTitle   string           `json:"suggested_title" db:"suggested_title"`
	SuggestedContent string           `json:"suggested_content" db:"suggested_content"`
	SourceURLs       pq.StringArray   `json:"source_urls" db:"source_urls"`
	Confidence       float64          `json:"confidence" db:"confidence"`
	Status           SuggestionStatus `json:"status" db:"status"`
	CreatedBy        string           `json:"created_by" db:"created_by"`
	CreatedAt        int64            `json:"created_at" db:"created_at"`
}

type ListSuggestionOptions struct {
	Status SuggestionStatus
}

func (opts ListSuggestionOptions) Apply(query *sq.SelectBuilder) {
	if opts.Status != "" {
		*query = query.Where(sq.Eq{"status": opts.Status})
	}
}
