// Package retry runs an operation with bounded attempts and exponential backoff.
package retry

import (
	"context"
	"errors"
	"time"
)

// Policy bounds how often and how fast an operation is retried.
type Policy struct {
	Attempts     int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultPolicy is used for startup connections.
func DefaultPolicy(attempts int) Policy {
	return Policy{Attempts: attempts, InitialDelay: 500 * time.Millisecond, MaxDelay: 10 * time.Second, Multiplier: 2}
}

type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do calls fn until it succeeds, returns a Permanent error, the attempts run out or ctx ends.
// The hook, when set, observes every failed attempt before the wait.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error, hook ...func(attempt int, err error, wait time.Duration)) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.InitialDelay
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if attempt == attempts {
			break
		}
		for _, h := range hook {
			h(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * mult)
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return err
}
