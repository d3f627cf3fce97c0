package lookup

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Reason categorizes a failed lookup.
type Reason string

const (
	NotFound      Reason = "not_found"
	Unauthorized  Reason = "unauthorized"
	RateLimited   Reason = "rate_limited"
	Timeout       Reason = "timeout"
	UpstreamError Reason = "upstream_error"
	InvalidInput  Reason = "invalid_input"
)

// Human returns the phrase used in user-facing failure notes.
func (r Reason) Human() string {
	switch r {
	case NotFound:
		return "location not found"
	case Unauthorized:
		return "missing or invalid API key"
	case RateLimited:
		return "rate limited"
	case Timeout:
		return "timed out"
	case InvalidInput:
		return "invalid input"
	}
	return "upstream error"
}

// ReasonFromStatus maps a non-2xx HTTP status to a failure reason.
func ReasonFromStatus(status int) Reason {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return Unauthorized
	case status == http.StatusNotFound:
		return NotFound
	case status == http.StatusTooManyRequests:
		return RateLimited
	}
	return UpstreamError
}

// ReasonFromError maps a transport error to a failure reason.
func ReasonFromError(err error) Reason {
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return Timeout
	}
	return UpstreamError
}
