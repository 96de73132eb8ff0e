package llm

import (
	"context"
	"errors"
)

// ErrDisabled is wrapped by every DisabledClient failure.
var ErrDisabled = errors.New("no generative provider configured")

// DisabledClient is used when no API key is configured. Every call fails,
// so every page is built from fallback content.
type DisabledClient struct{}

// Name implements Client.
func (DisabledClient) Name() string { return ProviderNone }

// Generate implements Client.
func (DisabledClient) Generate(context.Context, string, string) (string, error) {
	return "", &ProviderError{Provider: ProviderNone, Err: ErrDisabled}
}
