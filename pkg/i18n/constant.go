package i18n

var ALLOW_LANG = map[string]bool{
	"en": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL          = "error.internal"
	ERROR_NOT_FOUND         = "error.notfound"
	ERROR_INVALIDARGUMENT   = "error.invalidargument"
	ERROR_UNAUTHORIZED      = "error.unauthorized"
	ERROR_FORBIDDEN         = "error.forbidden"
	ERROR_TOO_MANY_REQUESTS = "error.tooManyRequests"

	ERROR_QA_QUERY_REQUIRED         = "error.qa.query.required"
	ERROR_QA_SEARCH_FAILED          = "error.qa.search.failed"
	ERROR_QA_GENERATE_FAILED        = "error.qa.generate.failed"
	ERROR_SUGGESTION_PROCESSED      = "error.suggestion.processed"
	ERROR_SUGGESTION_INVALID_ACTION = "error.suggestion.invalid.action"
	ERROR_GITHUB_NOT_CONFIGURED     = "error.github.not.configured"
)
