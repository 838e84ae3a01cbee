// Package resilience wraps outbound calls in per-operation circuit breakers.
//
// There is no retry here: a failed call is reported to the user, who decides
// whether to resubmit. The breaker only stops hammering a service that keeps
// failing.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/logger"
)

// Config controls breaker behaviour.
type Config struct {
	Enabled       bool
	MinRequests   uint32
	FailureRatio  float64
	OpenTimeout   time.Duration
	HalfOpenCalls uint32
}

// DefaultConfig returns the breaker defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		MinRequests:   5,
		FailureRatio:  0.6,
		OpenTimeout:   30 * time.Second,
		HalfOpenCalls: 1,
	}
}

// FromSettings converts user settings into a breaker config.
func FromSettings(s domain.BreakerSettings) Config {
	return Config{
		Enabled:      s.Enabled,
		MinRequests:  uint32(max(s.MinRequests, 0)), //nolint:gosec // clamped to non-negative
		FailureRatio: s.FailureRatio,
		OpenTimeout:  time.Duration(s.OpenSeconds) * time.Second,
	}.normalize()
}

func (c Config) normalize() Config {
	out := c
	def := DefaultConfig()
	if out.MinRequests == 0 {
		out.MinRequests = def.MinRequests
	}
	if out.FailureRatio <= 0 || out.FailureRatio > 1 {
		out.FailureRatio = def.FailureRatio
	}
	if out.OpenTimeout <= 0 {
		out.OpenTimeout = def.OpenTimeout
	}
	if out.HalfOpenCalls == 0 {
		out.HalfOpenCalls = def.HalfOpenCalls
	}
	return out
}

// Classifier reports whether err should count against the breaker.
type Classifier func(err error) bool

// Guard runs calls through one breaker per operation name.
type Guard struct {
	cfg Config

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[any]
}

// NewGuard creates a guard.
func NewGuard(cfg Config) *Guard {
	return &Guard{
		cfg:      cfg.normalize(),
		breakers: make(map[string]*gobreaker.CircuitBreaker[any]),
	}
}

// Do runs fn once. When the operation's breaker is open, fn is not called
// and the returned error wraps domain.ErrServiceUnavailable.
func (g *Guard) Do(ctx context.Context, operation string, fn func(context.Context) error, classify Classifier) error {
	if fn == nil {
		return fmt.Errorf("resilience: operation callback is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	op := strings.TrimSpace(operation)
	if op == "" {
		op = "unknown"
	}
	if g == nil || !g.cfg.Enabled {
		return fn(ctx)
	}
	if classify == nil {
		classify = countAll
	}

	_, err := g.breaker(op, classify).Execute(func() (any, error) {
		return nil, fn(ctx)
	})
	if IsCircuitOpen(err) {
		return fmt.Errorf("%s: %w (%v)", op, domain.ErrServiceUnavailable, err)
	}
	return err
}

// State returns the breaker state for an operation, or closed if none exists yet.
func (g *Guard) State(operation string) gobreaker.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if b, ok := g.breakers[operation]; ok {
		return b.State()
	}
	return gobreaker.StateClosed
}

func (g *Guard) breaker(operation string, classify Classifier) *gobreaker.CircuitBreaker[any] {
	g.mu.Lock()
	defer g.mu.Unlock()

	if b, ok := g.breakers[operation]; ok {
		return b
	}

	settings := gobreaker.Settings{
		Name:        operation,
		MaxRequests: g.cfg.HalfOpenCalls,
		Timeout:     g.cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < g.cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= g.cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !classify(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit %s: %s -> %s", name, from, to)
		},
	}

	b := gobreaker.NewCircuitBreaker[any](settings)
	g.breakers[operation] = b
	return b
}

// IsCircuitOpen reports whether err came from a breaker refusing the call.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func countAll(error) bool { return true }
