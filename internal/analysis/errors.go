package analysis

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInProgress is returned when a request arrives while another is outstanding.
	ErrInProgress = errors.New("analysis already in progress")
	// ErrEmptyResponse means the provider answered without any text.
	ErrEmptyResponse = errors.New("analysis provider returned no text")
	// ErrGeneratorUnavailable means no generator is configured.
	ErrGeneratorUnavailable = errors.New("analysis generator unavailable")
)

// RateLimitError captures rate limit responses from the upstream provider.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
