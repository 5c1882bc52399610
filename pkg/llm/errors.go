package llm

import "fmt"

// RateLimitError is returned when the upstream model rejects a request for
// quota reasons. RetryAfterSeconds is zero when the backend gave no hint.
type RateLimitError struct {
	RetryAfterSeconds int
	Message           string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfterSeconds > 0 {
		return fmt.Sprintf("rate limit exceeded, retry after %d seconds: %s", e.RetryAfterSeconds, e.Message)
	}
	return fmt.Sprintf("rate limit exceeded: %s", e.Message)
}
