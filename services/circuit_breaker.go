package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"

	"stock-sentiment/observability"
)

// Breaker names, one per upstream the dashboard talks to.
const (
	BreakerYahoo     = "yahoo"
	BreakerAlpaca    = "alpaca"
	BreakerSentiment = "sentiment"
)

// CircuitBreakerConfig tunes how a breaker trips and recovers.
type CircuitBreakerConfig struct {
	MaxRequests uint32        // probes allowed while half-open
	Interval    time.Duration // closed-state window before counts reset
	Timeout     time.Duration // how long an open breaker stays open
}

// DefaultCircuitBreakerConfig is shared by the price and sentiment clients.
var DefaultCircuitBreakerConfig = CircuitBreakerConfig{
	MaxRequests: 5,
	Interval:    1 * time.Minute,
	Timeout:     30 * time.Second,
}

// CircuitBreakerRegistry hands out one breaker per upstream. Breakers are
// created on first use and live for the process lifetime; a flapping price
// provider never opens the sentiment breaker.
type CircuitBreakerRegistry struct {
	mu       sync.RWMutex
	breakers map[string]*gobreaker.CircuitBreaker[any]
	config   CircuitBreakerConfig
}

// NewCircuitBreakerRegistry creates an empty registry with the given config.
func NewCircuitBreakerRegistry(config CircuitBreakerConfig) *CircuitBreakerRegistry {
	return &CircuitBreakerRegistry{
		breakers: make(map[string]*gobreaker.CircuitBreaker[any]),
		config:   config,
	}
}

// GetBreaker returns the breaker for name, creating it on first use.
func (r *CircuitBreakerRegistry) GetBreaker(name string) *gobreaker.CircuitBreaker[any] {
	r.mu.RLock()
	cb, exists := r.breakers[name]
	r.mu.RUnlock()

	if exists {
		return cb
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under the write lock
	if cb, exists = r.breakers[name]; exists {
		return cb
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: r.config.MaxRequests,
		Interval:    r.config.Interval,
		Timeout:     r.config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Open after at least 5 calls with half or more failing
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			observability.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String())

			metrics := observability.GetMetrics()
			metrics.SetCircuitBreakerState(name, stateToInt(to))
			if to == gobreaker.StateOpen {
				metrics.RecordCircuitBreakerTrip(name)
			}
		},
	}

	cb = gobreaker.NewCircuitBreaker[any](settings)
	r.breakers[name] = cb

	return cb
}

// Execute runs fn through the named breaker. A cancelled context is rejected
// before fn runs so an abandoned analysis request never counts as an
// upstream failure.
func (r *CircuitBreakerRegistry) Execute(ctx context.Context, name string, fn func() (any, error)) (any, error) {
	cb := r.GetBreaker(name)

	result, err := cb.Execute(func() (any, error) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return fn()
	})

	if err != nil {
		if err == gobreaker.ErrOpenState {
			observability.Warn("circuit breaker open, rejecting request",
				"breaker", name)
			return nil, fmt.Errorf("service %s unavailable: circuit breaker open", name)
		}
		if err == gobreaker.ErrTooManyRequests {
			observability.Warn("circuit breaker half-open, too many requests",
				"breaker", name)
			return nil, fmt.Errorf("service %s unavailable: too many requests in half-open state", name)
		}
	}

	return result, err
}

// Status reports every breaker's state and counts. Surfaced on /api/health
// so a stuck upstream is visible without reading logs.
func (r *CircuitBreakerRegistry) Status() map[string]CircuitBreakerStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := make(map[string]CircuitBreakerStatus)
	for name, cb := range r.breakers {
		counts := cb.Counts()
		status[name] = CircuitBreakerStatus{
			Name:             name,
			State:            cb.State().String(),
			Requests:         counts.Requests,
			TotalSuccesses:   counts.TotalSuccesses,
			TotalFailures:    counts.TotalFailures,
			ConsecutiveSucc:  counts.ConsecutiveSuccesses,
			ConsecutiveFails: counts.ConsecutiveFailures,
		}
	}
	return status
}

// CircuitBreakerStatus is one breaker's health snapshot.
type CircuitBreakerStatus struct {
	Name             string `json:"name"`
	State            string `json:"state"`
	Requests         uint32 `json:"requests"`
	TotalSuccesses   uint32 `json:"total_successes"`
	TotalFailures    uint32 `json:"total_failures"`
	ConsecutiveSucc  uint32 `json:"consecutive_successes"`
	ConsecutiveFails uint32 `json:"consecutive_failures"`
}

var globalRegistry *CircuitBreakerRegistry
var registryOnce sync.Once

// GetGlobalRegistry returns the process-wide registry the service clients
// share.
func GetGlobalRegistry() *CircuitBreakerRegistry {
	registryOnce.Do(func() {
		globalRegistry = NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	})
	return globalRegistry
}

// SetGlobalRegistry swaps the shared registry. Tests use this to start each
// scenario with closed breakers.
func SetGlobalRegistry(r *CircuitBreakerRegistry) {
	globalRegistry = r
}

// WithCircuitBreaker runs fn through the shared registry's named breaker,
// keeping the caller's result type.
func WithCircuitBreaker[T any](ctx context.Context, name string, fn func() (T, error)) (T, error) {
	registry := GetGlobalRegistry()

	result, err := registry.Execute(ctx, name, func() (any, error) {
		return fn()
	})

	if err != nil {
		var zero T
		return zero, err
	}

	return result.(T), nil
}

// stateToInt maps a breaker state onto the gauge scale:
// 0=closed, 1=half-open, 2=open.
func stateToInt(state gobreaker.State) int {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
