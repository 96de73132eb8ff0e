package llm

import (
	"context"
	"errors"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/circuitbreaker"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
)

// BreakerClient stops calling a provider after repeated failures. Calls made
// while the circuit is open fail immediately with a ProviderError.
type BreakerClient struct {
	next    Client
	breaker *circuitbreaker.Breaker
}

// NewBreakerClient wraps next in a circuit breaker.
func NewBreakerClient(next Client, cfg BreakerConfig, log logger.Logger) *BreakerClient {
	return &BreakerClient{
		next: next,
		breaker: circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: cfg.FailureThreshold,
			Timeout:          cfg.Cooldown,
			OnStateChange: func(from, to circuitbreaker.State) {
				log.Warn("Provider circuit state changed",
					logger.String("provider", next.Name()),
					logger.String("from", from.String()),
					logger.String("to", to.String()),
				)
			},
			IsFailure: countsAgainstProvider,
		}),
	}
}

// Name implements Client.
func (c *BreakerClient) Name() string { return c.next.Name() }

// State reports the breaker state.
func (c *BreakerClient) State() circuitbreaker.State { return c.breaker.State() }

// Generate implements Client.
func (c *BreakerClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	var reply string
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		out, err := c.next.Generate(ctx, system, prompt)
		reply = out
		return err
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return "", &ProviderError{Provider: c.next.Name(), Err: err}
	}
	if err != nil {
		return "", WrapError(c.next.Name(), err)
	}
	return reply, nil
}

// countsAgainstProvider ignores cancellations made by the caller.
func countsAgainstProvider(err error) bool {
	return !errors.Is(err, context.Canceled)
}
