package preview

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig tunes the circuit breaker in front of a Fetcher.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig opens after at least 5 requests with an 80% failure
// rate and stays open for a minute.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "link-preview",
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// Breaker is a Fetcher that stops calling next while the upstream keeps
// failing. Rejected calls return gobreaker.ErrOpenState or
// gobreaker.ErrTooManyRequests.
type Breaker struct {
	next Fetcher
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next. A nil logger disables state-change logging.
func NewBreaker(next Fetcher, cfg BreakerConfig, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			// A cancelled caller says nothing about upstream health.
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &Breaker{next: next, cb: cb}
}

// Fetch calls the wrapped fetcher through the breaker.
func (b *Breaker) Fetch(ctx context.Context, rawURL string) (*Preview, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Fetch(ctx, rawURL)
	})
	if err != nil {
		return nil, err
	}
	return res.(*Preview), nil
}

// State reports the breaker state ("closed", "half-open", "open").
func (b *Breaker) State() string {
	return b.cb.State().String()
}
