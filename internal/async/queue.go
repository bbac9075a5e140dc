// Package async provides the worker queue the pipeline uses to fan extraction
// out across a batch of documents. Documents are independent computations, so
// the queue needs no cross-job coordination beyond draining on shutdown.
package async

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job is the smallest useful unit: one document to process. Index is the
// job's position in its batch so results can land in input order.
type Job struct {
	ID          uuid.UUID
	Index       int
	Path        string
	SubmittedAt time.Time
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// ProcessFunc handles one job. It owns its own error handling; the queue only
// schedules.
type ProcessFunc func(ctx context.Context, job Job)
