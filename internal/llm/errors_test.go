package llm_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/llm"
)

func TestWrapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, llm.WrapError("x", nil))

	empty := &llm.EmptyResponseError{Provider: "x"}
	assert.Same(t, empty, llm.WrapError("x", empty))

	original := &llm.ProviderError{Provider: "x", StatusCode: 500}
	wrapped := fmt.Errorf("outer: %w", original)
	assert.Equal(t, wrapped, llm.WrapError("y", wrapped))

	err := llm.WrapError("x", context.DeadlineExceeded)
	var provErr *llm.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.True(t, provErr.Retryable())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, "x provider: context deadline exceeded", err.Error())
}
