package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("idle", func(context.Context, Job) error { return nil }, QueueConfig{})
	assert.ErrorIs(t, q.Enqueue("noop", ""), ErrNotRunning)
}

func TestQueueProcessesJobs(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	done := make(chan struct{}, 3)

	q := NewQueue("collect", func(_ context.Context, job Job) error {
		mu.Lock()
		seen = append(seen, job.Payload)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	for _, p := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue("collect", p))
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("jobs were not processed")
		}
	}
	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, seen)
}

func TestQueueRetriesFailures(t *testing.T) {
	var attempts int32
	done := make(chan struct{})

	q := NewQueue("flaky", func(_ context.Context, job Job) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("transient")
		}
		assert.Equal(t, 2, job.Attempt)
		close(done)
		return nil
	}, QueueConfig{MaxRetries: 3, RetryDelay: 5 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue("flaky", "x"))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not retried")
	}
	assert.EqualValues(t, 3, atomic.LoadInt32(&attempts))
}

func TestStopRejectsNewJobs(t *testing.T) {
	q := NewQueue("closing", func(context.Context, Job) error { return nil }, QueueConfig{})
	q.Start(context.Background())
	q.Stop()
	q.Stop()

	assert.ErrorIs(t, q.Enqueue("noop", ""), ErrNotRunning)
}

func TestStopDrainsBufferedJobs(t *testing.T) {
	var processed int32
	q := NewQueue("drain", func(ctx context.Context, _ Job) error {
		assert.NoError(t, ctx.Err())
		atomic.AddInt32(&processed, 1)
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 8})
	q.Start(context.Background())

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue("count", ""))
	}
	q.Stop()

	assert.EqualValues(t, 5, atomic.LoadInt32(&processed))
}
