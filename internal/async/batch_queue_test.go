package async

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchQueueProcessesEverything(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}

	q := NewBatchQueue(func(_ context.Context, job Job) {
		mu.Lock()
		seen[job.Path] = true
		mu.Unlock()
	}, nil, WithWorkers(3), WithQueueSize(8))

	paths := []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf"}
	for i, p := range paths {
		require.NoError(t, q.Enqueue(context.Background(), Job{ID: uuid.New(), Index: i, Path: p}))
	}
	q.Shutdown(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, len(paths))
	for _, p := range paths {
		assert.True(t, seen[p], "job %s was not processed", p)
	}
}

func TestBatchQueueEnqueueAfterShutdown(t *testing.T) {
	q := NewBatchQueue(func(context.Context, Job) {}, nil, WithWorkers(1))
	q.Shutdown(context.Background())

	// must not panic on a closed channel; the job is dropped with a warning
	err := q.Enqueue(context.Background(), Job{ID: uuid.New(), Path: "late.pdf"})
	assert.NoError(t, err)

	// repeated shutdown is a no-op
	q.Shutdown(context.Background())
}
