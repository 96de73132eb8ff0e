package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
)

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	t.Parallel()

	base := newTestLogger(t)
	enriched := base.With(logger.String("request_id", "req-1"))

	ctx := logger.WithContext(context.Background(), enriched)

	assert.Same(t, enriched, logger.FromContext(ctx))
}

func TestFromContext_LaterLoggerWins(t *testing.T) {
	t.Parallel()

	first := newTestLogger(t)
	second := newTestLogger(t)

	ctx := logger.WithContext(context.Background(), first)
	ctx = logger.WithContext(ctx, second)

	assert.Same(t, second, logger.FromContext(ctx))
}

func TestFromContext_FallbackIsSharedAndUsable(t *testing.T) {
	t.Parallel()

	a := logger.FromContext(context.Background())
	b := logger.FromContext(context.Background())

	require.NotNil(t, a)
	assert.Same(t, a, b)

	a.Warn("fallback logger in use", logger.String("slug", "ecoclean-detergent"))
}

func TestFromContextOr(t *testing.T) {
	t.Parallel()

	def := newTestLogger(t)
	stored := newTestLogger(t)

	assert.Same(t, def, logger.FromContextOr(context.Background(), def))
	ctx := logger.WithContext(context.Background(), stored)
	assert.Same(t, stored, logger.FromContextOr(ctx, def))
}

func TestNew_AttachesServiceField(t *testing.T) {
	t.Parallel()

	l, err := logger.New(logger.Config{Level: "debug", Service: "seo-generator", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)

	l.Debug("service field attached")
	assert.NoError(t, logger.NewNop().Sync())
}

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	l, err := logger.New(logger.Config{Level: "warn", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	return l
}
