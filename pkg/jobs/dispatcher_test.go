package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherProcessesJobs(t *testing.T) {
	var handled int64
	d := NewDispatcher("test", func(context.Context, Job) error {
		atomic.AddInt64(&handled, 1)
		return nil
	}, DispatcherConfig{Workers: 2, BufferSize: 8})

	d.Start(context.Background())
	defer d.Stop()

	for i := 0; i < 5; i++ {
		require.True(t, d.Enqueue(Job{Type: "email"}))
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&handled) == 5
	}, time.Second, 10*time.Millisecond)
}

func TestDispatcherDropsWhenNotStarted(t *testing.T) {
	d := NewDispatcher("test", func(context.Context, Job) error { return nil }, DispatcherConfig{})
	assert.False(t, d.Enqueue(Job{Type: "email"}))
}

func TestDispatcherDropsOnFullBuffer(t *testing.T) {
	block := make(chan struct{})
	d := NewDispatcher("test", func(context.Context, Job) error {
		<-block
		return nil
	}, DispatcherConfig{Workers: 1, BufferSize: 1})

	d.Start(context.Background())
	defer func() {
		close(block)
		d.Stop()
	}()

	// First job occupies the worker, second fills the buffer; eventually a
	// job is rejected rather than blocking the producer.
	dropped := false
	for i := 0; i < 3; i++ {
		if !d.Enqueue(Job{Type: "email"}) {
			dropped = true
			break
		}
	}
	assert.True(t, dropped)
}

func TestDispatcherSwallowsHandlerErrors(t *testing.T) {
	var attempts int64
	d := NewDispatcher("test", func(context.Context, Job) error {
		atomic.AddInt64(&attempts, 1)
		return errors.New("boom")
	}, DispatcherConfig{Workers: 1, BufferSize: 4})

	d.Start(context.Background())
	defer d.Stop()

	require.True(t, d.Enqueue(Job{Type: "email"}))
	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&attempts) == 1
	}, time.Second, 10*time.Millisecond)

	// No retry: the count must stay at one.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&attempts))
}
