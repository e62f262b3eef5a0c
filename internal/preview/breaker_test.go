package preview

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaker_OpensAfterFailures(t *testing.T) {
	calls := 0
	failing := FetcherFunc(func(ctx context.Context, rawURL string) (*Preview, error) {
		calls++
		return nil, errors.New("upstream down")
	})
	b := NewBreaker(failing, DefaultBreakerConfig(), nil)

	for i := 0; i < 5; i++ {
		_, err := b.Fetch(context.Background(), "https://example.com")
		require.Error(t, err)
	}
	assert.Equal(t, "open", b.State())

	_, err := b.Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, calls)
}

func TestBreaker_StaysClosedBelowMinRequests(t *testing.T) {
	failing := FetcherFunc(func(ctx context.Context, rawURL string) (*Preview, error) {
		return nil, errors.New("upstream down")
	})
	b := NewBreaker(failing, DefaultBreakerConfig(), nil)

	for i := 0; i < 4; i++ {
		_, _ = b.Fetch(context.Background(), "https://example.com")
	}
	assert.Equal(t, "closed", b.State())
}

func TestBreaker_PassesThrough(t *testing.T) {
	ok := FetcherFunc(func(ctx context.Context, rawURL string) (*Preview, error) {
		return &Preview{URL: rawURL, Title: "t"}, nil
	})
	b := NewBreaker(ok, DefaultBreakerConfig(), nil)

	p, err := b.Fetch(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "t", p.Title)
}

func TestBreaker_IgnoresCancellation(t *testing.T) {
	cancelled := FetcherFunc(func(ctx context.Context, rawURL string) (*Preview, error) {
		return nil, context.Canceled
	})
	b := NewBreaker(cancelled, DefaultBreakerConfig(), nil)

	for i := 0; i < 10; i++ {
		_, _ = b.Fetch(context.Background(), "https://example.com")
	}
	assert.Equal(t, "closed", b.State())
}
