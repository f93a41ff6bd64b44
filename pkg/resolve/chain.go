// Package resolve implements the ordered provider fallback engine shared by
// all lookup families. Providers are tried strictly in configured order;
// the first usable result wins and lower-priority providers are never
// contacted. Every provider failure is non-fatal until the list is
// exhausted, at which point an optional degraded tier may synthesize a
// lower-confidence result from a weaker signal.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Provider is one external data source for a lookup family. Q is the
// normalized query type, T the canonical result type.
type Provider[Q, T any] interface {
	// Name identifies the provider in diagnostics.
	Name() string
	// Timeout bounds a single Lookup call. Must be positive.
	Timeout() time.Duration
	// Lookup contacts the provider and maps its response into the
	// canonical shape. Transport errors, non-2xx statuses and malformed
	// payloads are all returned as ordinary errors.
	Lookup(ctx context.Context, query Q) (T, error)
}

// ErrNoData marks a transport-level success whose payload lacked the
// required fields, i.e. the provider did not know the answer.
var ErrNoData = errors.New("provider returned no usable data")

// ErrNotFound marks a subject confirmed nonexistent (maps to HTTP 404).
var ErrNotFound = errors.New("subject does not exist")

// Error is the terminal resolution failure after every provider and the
// degraded tier are exhausted. It preserves the last adapter error for
// diagnostics.
type Error struct {
	Family string
	Last   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s lookup failed, all providers exhausted: %v", e.Family, e.Last)
}

func (e *Error) Unwrap() error { return e.Last }

// DegradedFunc synthesizes a lower-confidence result once all primary
// providers have failed. Returning ErrNotFound (possibly wrapped) marks the
// subject as confirmed nonexistent.
type DegradedFunc[Q, T any] func(ctx context.Context, query Q) (T, error)

// Chain resolves queries against an ordered provider list.
type Chain[Q, T any] struct {
	family    string
	providers []Provider[Q, T]
	usable    func(T) bool
	degraded  DegradedFunc[Q, T]
	logger    *slog.Logger
}

// NewChain builds a Chain. The provider order encodes priority. usable is
// the per-family predicate deciding whether a mapped result counts as
// found; a nil predicate accepts everything.
func NewChain[Q, T any](family string, logger *slog.Logger, usable func(T) bool, providers ...Provider[Q, T]) *Chain[Q, T] {
	if usable == nil {
		usable = func(T) bool { return true }
	}
	return &Chain[Q, T]{
		family:    family,
		providers: providers,
		usable:    usable,
		logger:    logger,
	}
}

// WithDegraded installs the secondary tier invoked only after full
// exhaustion of the primary providers.
func (c *Chain[Q, T]) WithDegraded(fn DegradedFunc[Q, T]) *Chain[Q, T] {
	c.degraded = fn
	return c
}

// Resolve walks the provider list in order and returns the first usable
// canonical result. A provider is never retried within one resolution, and
// providers are never raced. On exhaustion the degraded tier (if any) runs;
// its failure does not displace the last primary error in the terminal
// *Error, except for ErrNotFound which is surfaced directly.
func (c *Chain[Q, T]) Resolve(ctx context.Context, query Q) (T, error) {
	var zero T
	var last error

	for _, p := range c.providers {
		result, err := c.attempt(ctx, p, query)
		if err == nil {
			c.logger.Debug("provider answered", "family", c.family, "provider", p.Name())
			return result, nil
		}
		if rateLimited(err) {
			c.logger.Warn("provider rate limited, advancing", "family", c.family, "provider", p.Name())
		} else {
			c.logger.Warn("provider lookup failed", "family", c.family, "provider", p.Name(), "error", err)
		}
		last = err

		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
	}

	if c.degraded != nil {
		result, err := c.degraded(ctx, query)
		if err == nil {
			c.logger.Info("served degraded result", "family", c.family)
			return result, nil
		}
		if errors.Is(err, ErrNotFound) {
			return zero, err
		}
		c.logger.Warn("degraded tier failed", "family", c.family, "error", err)
		if last == nil {
			last = err
		}
	}

	if last == nil {
		last = errors.New("no providers configured")
	}
	return zero, &Error{Family: c.family, Last: last}
}

func (c *Chain[Q, T]) attempt(ctx context.Context, p Provider[Q, T], query Q) (T, error) {
	var zero T

	tctx, cancel := context.WithTimeout(ctx, p.Timeout())
	defer cancel()

	result, err := p.Lookup(tctx, query)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", p.Name(), err)
	}
	if !c.usable(result) {
		return zero, fmt.Errorf("%s: %w", p.Name(), ErrNoData)
	}
	return result, nil
}

func rateLimited(err error) bool {
	var rl interface{ RateLimited() bool }
	return errors.As(err, &rl) && rl.RateLimited()
}
