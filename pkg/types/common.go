package types

const (
	NO_PAGINATION = 0

	DEFAULT_LIST_LIMIT = 50
)

// Pagination is the list envelope shared by admin listing endpoints.
type Pagination struct {
	Total   int64  `json:"total"`
	Limit   uint64 `json:"limit"`
	Offset  uint64 `json:"offset"`
	HasMore bool   `json:"has_more"`
}
