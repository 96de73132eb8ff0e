package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ProviderError is any failure to obtain a reply from a provider: transport,
// authentication, a provider-side error, an open circuit or an expired
// deadline.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
	// Temporary reports whether a later identical call could succeed.
	Temporary bool
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s provider: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Retryable lets infrastructure/retry decide whether to try again.
func (e *ProviderError) Retryable() bool { return e.Temporary }

// EmptyResponseError means the provider answered without any text.
type EmptyResponseError struct {
	Provider string
}

func (e *EmptyResponseError) Error() string {
	return e.Provider + " provider: empty response"
}

// WrapError converts err into a *ProviderError unless it already is one or is
// an *EmptyResponseError.
func WrapError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}
	var ee *EmptyResponseError
	if errors.As(err, &ee) {
		return err
	}
	return &ProviderError{
		Provider:  provider,
		Err:       err,
		Temporary: errors.Is(err, context.DeadlineExceeded),
	}
}

// statusError builds a ProviderError for an HTTP status returned by a provider.
func statusError(provider string, status int, err error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		StatusCode: status,
		Err:        err,
		Temporary:  status == http.StatusTooManyRequests || status >= http.StatusInternalServerError,
	}
}
