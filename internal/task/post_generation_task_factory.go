package task

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quillworks/quill-api/internal/generation"
)

// PostGenerationTaskFactory creates PostGenerationTask instances with their
// dependencies pre-wired, so the service layer can create tasks knowing only
// the post ID.
type PostGenerationTaskFactory struct {
	posts     PostWriter
	generator generation.Generator
	timeout   time.Duration
	logger    *slog.Logger
}

// NewPostGenerationTaskFactory creates a new factory for post generation tasks.
func NewPostGenerationTaskFactory(
	posts PostWriter,
	generator generation.Generator,
	timeout time.Duration,
	logger *slog.Logger,
) *PostGenerationTaskFactory {
	return &PostGenerationTaskFactory{
		posts:     posts,
		generator: generator,
		timeout:   timeout,
		logger:    logger,
	}
}

// CreateTask creates a new PostGenerationTask for the given post.
func (f *PostGenerationTaskFactory) CreateTask(postID uuid.UUID) (Task, error) {
	return NewPostGenerationTask(postID, f.posts, f.generator, f.timeout, f.logger)
}
