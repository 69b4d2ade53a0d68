package types

// QASource is one retrieved chunk attached to an answer. Content is
// truncated to 200 characters before it leaves the service.
type QASource struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	URL        string  `json:"url"`
	Similarity float64 `json:"similarity"`
}

// QAResult is the ephemeral answer payload, never persisted.
// Confidence is boosted average retrieval similarity in [0, 1].
type QAResult struct {
	Answer     string     `json:"answer"`
	Sources    []QASource `json:"sources"`
	Confidence float64    `json:"confidence"`
	// CallSupport is set by the escalation policy when confidence is so low
	// the caller should surface a live-support affordance instead of the
	// article suggestion flow.
	CallSupport bool `json:"call_support,omitempty"`
}
