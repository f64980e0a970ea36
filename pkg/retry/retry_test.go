package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastPolicy(attempts int) Policy {
	return Policy{Attempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2}
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	var waits []time.Duration
	err := Do(context.Background(), fastPolicy(5), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, func(_ int, _ error, wait time.Duration) { waits = append(waits, wait) })

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, waits)
}

func TestDoGivesUp(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := Do(context.Background(), fastPolicy(3), func(context.Context) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnPermanent(t *testing.T) {
	calls := 0
	bad := errors.New("bad credentials")
	err := Do(context.Background(), fastPolicy(5), func(context.Context) error {
		calls++
		return Permanent(bad)
	})

	assert.Equal(t, bad, err)
	assert.Equal(t, 1, calls)
}

func TestDoHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, Policy{Attempts: 3, InitialDelay: time.Hour}, func(context.Context) error {
		return errors.New("down")
	})

	assert.ErrorIs(t, err, context.Canceled)
}
