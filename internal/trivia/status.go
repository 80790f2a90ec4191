package trivia

import (
	"fmt"

	"trivia-quiz/internal/domain"
)

// OpenTDB response codes.
const (
	CodeSuccess          = 0
	CodeNoResults        = 1
	CodeInvalidParameter = 2
	CodeTokenNotFound    = 3
	CodeTokenEmpty       = 4
	CodeRateLimit        = 5
)

// StatusError is a non-success provider response code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("response code %d: %s", e.Code, StatusText(e.Code))
}

func (e *StatusError) Unwrap() error { return domain.ErrProviderStatus }

// StatusText describes a provider response code.
func StatusText(code int) string {
	switch code {
	case CodeSuccess:
		return "success"
	case CodeNoResults:
		return "not enough questions for the query"
	case CodeInvalidParameter:
		return "invalid parameter"
	case CodeTokenNotFound:
		return "session token not found"
	case CodeTokenEmpty:
		return "session token exhausted"
	case CodeRateLimit:
		return "rate limit exceeded"
	default:
		return "unknown status"
	}
}
