package orchestrator

// Error kind codes surfaced in Response.ErrorCode (spec §7). These are
// stable strings, not Go error types — the orchestrator never throws a
// stage error across its own boundary.
const (
	ErrCodeInvalidQuery         = "INVALID_QUERY"
	ErrCodeRetrievalUnavailable = "RETRIEVAL_UNAVAILABLE"
	ErrCodeUnexpectedInternal   = "UNEXPECTED_INTERNAL"
)
