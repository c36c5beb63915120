// Package task implements in-process background task processing. Tasks are
// detached units of work: once submitted they run independently of the
// request that created them, with no cancellation and no retry.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Status represents the current state of a task as tracked by the runner.
// This is internal bookkeeping; domain entities carry their own status.
type Status string

// Possible task status values
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Task type constants
const (
	// TypePostGeneration identifies tasks that generate blog post content.
	TypePostGeneration = "post_generation"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Status returns the current task status
	Status() Status

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// Runner defines the interface for submitting background tasks. The service
// layer depends on this rather than the concrete runner.
type Runner interface {
	// Submit adds a task to the processing queue.
	// Returns an error if the queue is full or the runner is stopped.
	Submit(ctx context.Context, t Task) error
}
