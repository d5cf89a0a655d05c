package worker

import (
	"context"
)

// Worker is a long-running background job.
type Worker interface {
	// Start runs the worker loop until Stop or context cancellation.
	Start(ctx context.Context) error

	// Stop signals the loop to finish.
	Stop() error

	// Name identifies the worker in logs.
	Name() string
}
