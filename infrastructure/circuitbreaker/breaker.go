// Package circuitbreaker stops calling a failing dependency for a cool-down
// period after repeated consecutive failures.
package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrCircuitOpen is returned without calling the dependency while the circuit is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the breaker state.
type State int

const (
	// StateClosed lets every call through.
	StateClosed State = iota
	// StateOpen rejects calls until the timeout elapses.
	StateOpen
	// StateHalfOpen lets a single probe call through.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config configures a Breaker.
type Config struct {
	// FailureThreshold consecutive failures open the circuit.
	FailureThreshold int
	// SuccessThreshold consecutive half-open successes close it again.
	SuccessThreshold int
	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration
	// OnStateChange is called with the lock held; it must not call the breaker.
	OnStateChange func(from, to State)
	// IsFailure decides which errors count against the dependency. Nil counts
	// every non-nil error except context cancellation by the caller.
	IsFailure func(error) bool
}

// Breaker implements the circuit breaker pattern. It is safe for concurrent use.
type Breaker struct {
	mu          sync.Mutex
	cfg         Config
	state       State
	failures    int
	successes   int
	openedAt    time.Time
	probeActive bool
	now         func() time.Time
}

// New creates a closed Breaker.
func New(cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = func(err error) bool { return !errors.Is(err, context.Canceled) }
	}
	return &Breaker{cfg: cfg, state: StateClosed, now: time.Now}
}

// Execute runs fn unless the circuit is open.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := b.before(); err != nil {
		return err
	}

	err := fn(ctx)
	b.after(err)
	return err
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset closes the circuit and clears the counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transition(StateClosed)
}

func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		wait := b.cfg.Timeout - b.now().Sub(b.openedAt)
		if wait > 0 {
			return fmt.Errorf("%w: retry in %v", ErrCircuitOpen, wait.Round(time.Millisecond))
		}
		b.transition(StateHalfOpen)
		b.probeActive = true
	case StateHalfOpen:
		if b.probeActive {
			return fmt.Errorf("%w: probe in flight", ErrCircuitOpen)
		}
		b.probeActive = true
	case StateClosed:
	}
	return nil
}

func (b *Breaker) after(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probeActive = false
	if err != nil && b.cfg.IsFailure(err) {
		b.failures++
		b.successes = 0
		if b.state == StateHalfOpen || b.failures >= b.cfg.FailureThreshold {
			b.transition(StateOpen)
		}
		return
	}

	b.failures = 0
	if b.state == StateHalfOpen {
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.transition(StateClosed)
		}
	}
}

func (b *Breaker) transition(to State) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	b.failures = 0
	b.successes = 0
	if to == StateOpen {
		b.openedAt = b.now()
	}
	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}
