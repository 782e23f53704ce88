package vnovel

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how often a transient backend failure is retried before
// the run is aborted. One policy object is shared by the narrative and art
// generators so the behaviour stays uniform.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Do runs op until it succeeds, the attempts are exhausted, or ctx is done.
// Wrap an error in backoff.Permanent to stop retrying early.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	bo := backoff.NewExponentialBackOff()
	if p.BaseDelay > 0 {
		bo.InitialInterval = p.BaseDelay
	}
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(attempts-1)), ctx))
}
