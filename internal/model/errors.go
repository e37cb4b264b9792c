package model

import (
	"fmt"
	"strconv"
	"time"
)

// HTTPError wraps a non-2xx HTTP status so callers can decide whether to retry.
type HTTPError struct {
	StatusCode int
	URL        string
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("HTTP %d", e.StatusCode)
	if e.URL != "" {
		msg += " from " + e.URL
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ParseRetryAfter reads a Retry-After header given in seconds. HTTP-date
// values and garbage yield zero.
func ParseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
