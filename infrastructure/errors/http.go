// Package errors provides typed errors for failed upstream HTTP calls.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of an error response body is retained.
const maxErrorBody = 4 << 10

// HTTPError describes a non-2xx response from an upstream HTTP API.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error (%s): %s", e.Status, e.Message)
	}
	return "HTTP error: " + e.Status
}

// Retryable reports whether the status suggests a transient upstream failure.
func (e *HTTPError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// ParseHTTPError returns nil for 2xx and 3xx responses. Otherwise it reads
// the body and extracts a message from the common JSON error envelopes:
// {"error":"..."}, {"message":"..."} and {"error":{"message":"..."}}.
func ParseHTTPError(resp *http.Response) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    fmt.Sprintf("read error response body: %v", err),
		}
	}

	return &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(body),
		Message:    extractMessage(body),
	}
}

func extractMessage(body []byte) string {
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if json.Unmarshal(body, &envelope) != nil {
		return string(body)
	}

	if len(envelope.Error) > 0 {
		var text string
		if json.Unmarshal(envelope.Error, &text) == nil && text != "" {
			return text
		}
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(envelope.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
	}

	if envelope.Message != "" {
		return envelope.Message
	}
	return string(body)
}

// StatusCode extracts the status code of an HTTPError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}
