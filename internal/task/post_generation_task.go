package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quillworks/quill-api/internal/domain"
	"github.com/quillworks/quill-api/internal/generation"
	"github.com/quillworks/quill-api/internal/store"
)

// Common errors
var (
	ErrNilPostWriter = errors.New("post writer cannot be nil")
	ErrNilGenerator  = errors.New("generator cannot be nil")
	ErrNilLogger     = errors.New("logger cannot be nil")
	ErrEmptyPostID   = errors.New("post ID cannot be empty")
)

// PostWriter defines the operations the generation task needs from the
// service layer: reading the post it was created for and writing the outcome
// back. This keeps the task decoupled from the full PostService surface.
type PostWriter interface {
	// GetPostForGeneration retrieves a post by its ID without an ownership
	// check; the worker acts on the system's behalf, not a client's.
	GetPostForGeneration(ctx context.Context, postID uuid.UUID) (*domain.Post, error)

	// CompleteGeneration writes the terminal status and content to the post.
	CompleteGeneration(ctx context.Context, postID uuid.UUID, status domain.PostStatus, content string) error
}

// PostGenerationTask implements the Task interface. It runs the content
// generation pipeline for a single post and applies exactly one terminal
// status transition:
//
//	pending -> completed  (pipeline returned a result; content = coerced text)
//	pending -> timeout    (pipeline exceeded its deadline)
//	pending -> failed     (pipeline returned any other error; content = error text)
//
// Pipeline failures are absorbed here and never propagate: the request that
// created the post has already returned.
type PostGenerationTask struct {
	id        uuid.UUID
	postID    uuid.UUID
	posts     PostWriter
	generator generation.Generator
	timeout   time.Duration
	logger    *slog.Logger
	status    Status
}

// NewPostGenerationTask creates a new post generation task.
// The timeout bounds a single pipeline invocation; zero disables the bound.
func NewPostGenerationTask(
	postID uuid.UUID,
	posts PostWriter,
	generator generation.Generator,
	timeout time.Duration,
	logger *slog.Logger,
) (*PostGenerationTask, error) {
	if posts == nil {
		return nil, ErrNilPostWriter
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if postID == uuid.Nil {
		return nil, ErrEmptyPostID
	}

	return &PostGenerationTask{
		id:        uuid.New(),
		postID:    postID,
		posts:     posts,
		generator: generator,
		timeout:   timeout,
		logger:    logger.With("task_type", TypePostGeneration, "post_id", postID),
		status:    StatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *PostGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *PostGenerationTask) Type() string {
	return TypePostGeneration
}

// Status returns the current task status
func (t *PostGenerationTask) Status() Status {
	return t.status
}

// Execute runs the generation pipeline for the post and writes the outcome
// back. If the post has been deleted before the task runs, it exits without
// error and performs no write. Only infrastructure failures (the write-back
// itself failing) are returned as errors.
func (t *PostGenerationTask) Execute(ctx context.Context) error {
	t.status = StatusProcessing
	t.logger.Info("starting post generation task")

	post, err := t.posts.GetPostForGeneration(ctx, t.postID)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			// Deleted between creation and execution: nothing to write.
			t.status = StatusCompleted
			t.logger.Info("post no longer exists, skipping generation")
			return nil
		}
		t.status = StatusFailed
		t.logger.Error("failed to retrieve post", "error", err)
		return fmt.Errorf("failed to retrieve post: %w", err)
	}

	status, content := t.runPipeline(ctx, post.Title)

	if err := t.posts.CompleteGeneration(ctx, t.postID, status, content); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			// Deleted while the pipeline ran: drop the result silently.
			t.status = StatusCompleted
			t.logger.Info("post deleted during generation, discarding result")
			return nil
		}
		t.status = StatusFailed
		t.logger.Error("failed to write generation result", "error", err, "status", status)
		return fmt.Errorf("failed to write generation result: %w", err)
	}

	t.status = StatusCompleted
	t.logger.Info("post generation task finished", "status", status, "content_length", len(content))
	return nil
}

// runPipeline invokes the generator under the configured deadline and maps
// the outcome to a terminal post status plus the content to store.
func (t *PostGenerationTask) runPipeline(ctx context.Context, topic string) (domain.PostStatus, string) {
	genCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	result, err := t.generator.GeneratePost(genCtx, topic)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || genCtx.Err() == context.DeadlineExceeded {
			t.logger.Warn("generation pipeline timed out", "timeout", t.timeout)
			return domain.PostStatusTimeout,
				fmt.Sprintf("Content generation timed out after %s", t.timeout)
		}
		t.logger.Error("generation pipeline failed", "error", err)
		return domain.PostStatusFailed,
			fmt.Sprintf("Error generating content: %s", err.Error())
	}

	return domain.PostStatusCompleted, result.Text()
}
