package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueueProcessesTasks(t *testing.T) {
	seen := make(chan Task, 1)

	q := NewQueue("test", func(_ context.Context, task Task) error {
		seen <- task
		return nil
	}, QueueConfig{Workers: 1})

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Task{ID: "1", Kind: "schedule", EventID: 7}))

	select {
	case task := <-seen:
		require.Equal(t, "schedule", task.Kind)
		require.Equal(t, int64(7), task.EventID)
		require.False(t, task.Enqueued.IsZero())
	case <-time.After(time.Second):
		t.Fatal("task was never processed")
	}
}

func TestQueueRetriesFailedTasks(t *testing.T) {
	attempts := make(chan int, 4)

	q := NewQueue("test", func(_ context.Context, task Task) error {
		attempts <- task.Attempt
		if task.Attempt == 0 {
			return errors.New("transient")
		}
		return nil
	}, QueueConfig{Workers: 1, RetryDelay: time.Millisecond * 5})

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Task{ID: "1", Kind: "institutions"}))

	require.Equal(t, 0, <-attempts)
	select {
	case attempt := <-attempts:
		require.Equal(t, 1, attempt)
	case <-time.After(time.Second):
		t.Fatal("task was never retried")
	}
}

func TestQueueRejectsEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("test", func(context.Context, Task) error { return nil }, QueueConfig{})
	require.Error(t, q.Enqueue(Task{ID: "1"}))
}
