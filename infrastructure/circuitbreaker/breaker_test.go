package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream failed")

func fail(context.Context) error    { return errUpstream }
func succeed(context.Context) error { return nil }

func newTestBreaker(clock *time.Time) *Breaker {
	b := New(Config{FailureThreshold: 2, SuccessThreshold: 1, Timeout: time.Minute})
	b.now = func() time.Time { return *clock }
	return b
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	clock := time.Unix(1_700_000_000, 0)
	b := newTestBreaker(&clock)
	ctx := context.Background()

	assert.ErrorIs(t, b.Execute(ctx, fail), errUpstream)
	assert.Equal(t, StateClosed, b.State())
	assert.ErrorIs(t, b.Execute(ctx, fail), errUpstream)
	assert.Equal(t, StateOpen, b.State())

	called := false
	err := b.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreaker_HalfOpenProbeCloses(t *testing.T) {
	t.Parallel()

	clock := time.Unix(1_700_000_000, 0)
	b := newTestBreaker(&clock)
	ctx := context.Background()

	_ = b.Execute(ctx, fail)
	_ = b.Execute(ctx, fail)
	require.Equal(t, StateOpen, b.State())

	clock = clock.Add(time.Minute)
	require.NoError(t, b.Execute(ctx, succeed))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	clock := time.Unix(1_700_000_000, 0)
	b := newTestBreaker(&clock)
	ctx := context.Background()

	_ = b.Execute(ctx, fail)
	_ = b.Execute(ctx, fail)

	clock = clock.Add(2 * time.Minute)
	assert.ErrorIs(t, b.Execute(ctx, fail), errUpstream)
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Execute(ctx, succeed), ErrCircuitOpen)
}

func TestBreaker_CallerCancellationIsNotAFailure(t *testing.T) {
	t.Parallel()

	clock := time.Unix(1_700_000_000, 0)
	b := newTestBreaker(&clock)
	ctx := context.Background()

	for range 3 {
		_ = b.Execute(ctx, func(context.Context) error { return context.Canceled })
	}
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_StateChangeCallback(t *testing.T) {
	t.Parallel()

	var transitions []string
	b := New(Config{
		FailureThreshold: 1,
		Timeout:          time.Minute,
		OnStateChange: func(from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = b.Execute(context.Background(), fail)
	b.Reset()

	assert.Equal(t, []string{"closed->open", "open->closed"}, transitions)
}
