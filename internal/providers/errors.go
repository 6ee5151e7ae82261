package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// HTTPError is returned when the backend answers with a non-success status.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("generation backend returned status %d", e.Status)
	}
	return fmt.Sprintf("generation backend returned status %d: %s", e.Status, e.Body)
}

// TransportError is returned when the request could not be delivered or the
// response could not be read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("generation transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TimeoutError is returned when the backend did not answer in time.
type TimeoutError struct {
	After time.Duration
	Err   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("generation timed out after %s", e.After)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ResponseError is returned when the backend's answer is malformed.
type ResponseError struct {
	Reason string
}

func (e *ResponseError) Error() string {
	return "malformed generation response: " + e.Reason
}

// Failure kinds reported by Kind.
const (
	KindHTTP      = "http"
	KindTransport = "transport"
	KindTimeout   = "timeout"
	KindResponse  = "response"
	KindUnknown   = "unknown"
)

// Kind classifies err for metrics labels.
func Kind(err error) string {
	var httpErr *HTTPError
	var transportErr *TransportError
	var timeoutErr *TimeoutError
	var responseErr *ResponseError
	switch {
	case errors.As(err, &timeoutErr):
		return KindTimeout
	case errors.As(err, &httpErr):
		return KindHTTP
	case errors.As(err, &responseErr):
		return KindResponse
	case errors.As(err, &transportErr):
		return KindTransport
	default:
		return KindUnknown
	}
}

// Describe renders err as the text shown to the user in place of a response.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var httpErr *HTTPError
	var transportErr *TransportError
	var timeoutErr *TimeoutError
	var responseErr *ResponseError
	switch {
	case errors.As(err, &timeoutErr):
		return fmt.Sprintf("LLM Timeout: no response within %s", timeoutErr.After)
	case errors.As(err, &httpErr):
		body := strings.TrimSpace(httpErr.Body)
		if body == "" {
			return fmt.Sprintf("LLM Error (%d)", httpErr.Status)
		}
		return fmt.Sprintf("LLM Error (%d): %s", httpErr.Status, body)
	case errors.As(err, &responseErr):
		return fmt.Sprintf("LLM Error: %s", responseErr.Reason)
	case errors.As(err, &transportErr):
		return fmt.Sprintf("Connection Error: %v", transportErr.Err)
	default:
		return fmt.Sprintf("Generation Error: %v", err)
	}
}

// ClassifyTransport wraps an error returned by an HTTP round trip as a
// TimeoutError when it was caused by a deadline, otherwise as a TransportError.
func ClassifyTransport(err error, timeout time.Duration) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{After: timeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{After: timeout, Err: err}
	}
	return &TransportError{Err: err}
}
