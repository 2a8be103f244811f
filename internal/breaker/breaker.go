// Package breaker implements a per-dependency CLOSED/OPEN/HALF_OPEN
// circuit breaker (spec §4.8). It is a hand-rolled state machine rather
// than a wrapped third-party breaker: the decrement-on-success,
// floor-zero failure counter in CLOSED state is load-bearing for the
// exact-threshold invariant in spec §8, and general-purpose breakers
// (e.g. a reset-to-zero-on-any-success model) do not reproduce it.
package breaker

import (
	"log/slog"
	"sync"
	"time"
)

// State is one of the three circuit-breaker states.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// Config tunes one breaker instance (spec §4.8, §6).
type Config struct {
	Name             string
	Threshold        int           // consecutive failures to trip CLOSED -> OPEN
	Timeout          time.Duration // OPEN -> HALF_OPEN after this elapses
	SuccessThreshold int           // consecutive HALF_OPEN successes to close
}

// Breaker guards calls to one dependency. Zero value is not usable; use
// New.
type Breaker struct {
	cfg Config
	log *slog.Logger

	mu                sync.Mutex
	state             State
	failures          int
	halfOpenSuccesses int
	lastFailure       time.Time
}

// New constructs a breaker starting CLOSED.
func New(cfg Config, log *slog.Logger) *Breaker {
	if log == nil {
		log = slog.Default()
	}
	return &Breaker{cfg: cfg, log: log, state: Closed}
}

// State reports the current state under lock.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// allow decides whether a call may proceed, transitioning OPEN ->
// HALF_OPEN when the timeout has elapsed. Must be called with the lock
// held.
func (b *Breaker) allow(now time.Time) bool {
	switch b.state {
	case Closed, HalfOpen:
		return true
	case Open:
		if now.Sub(b.lastFailure) > b.cfg.Timeout {
			b.transition(HalfOpen)
			return true
		}
		return false
	default:
		return false
	}
}

func (b *Breaker) transition(to State) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	b.failures = 0
	b.halfOpenSuccesses = 0
	b.log.Info("circuit breaker transition",
		slog.String("breaker", b.cfg.Name),
		slog.String("from", from.String()),
		slog.String("to", to.String()))
}

func (b *Breaker) recordSuccess(now time.Time) {
	switch b.state {
	case Closed:
		if b.failures > 0 {
			b.failures--
		}
	case HalfOpen:
		b.halfOpenSuccesses++
		if b.halfOpenSuccesses >= b.cfg.SuccessThreshold {
			b.transition(Closed)
		}
	}
}

func (b *Breaker) recordFailure(now time.Time) {
	b.lastFailure = now
	switch b.state {
	case Closed:
		b.failures++
		if b.failures >= b.cfg.Threshold {
			b.transition(Open)
		}
	case HalfOpen:
		b.transition(Open)
	}
}

// Execute runs fn if the breaker admits the call, recording the
// outcome. If the breaker denies the call, or fn returns an error, it
// invokes fallback(err) and returns that value instead — the breaker
// never propagates an error through a caller-supplied fallback.
func Execute[T any](b *Breaker, fn func() (T, error), fallback func(error) T) T {
	now := time.Now()

	b.mu.Lock()
	admitted := b.allow(now)
	b.mu.Unlock()

	if !admitted {
		return fallback(ErrOpen)
	}

	result, err := fn()

	b.mu.Lock()
	if err != nil {
		b.recordFailure(time.Now())
	} else {
		b.recordSuccess(time.Now())
	}
	b.mu.Unlock()

	if err != nil {
		return fallback(err)
	}
	return result
}
