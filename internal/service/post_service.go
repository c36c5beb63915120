// Package service contains the application services that orchestrate
// stores, background tasks and the generation pipeline.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quillworks/quill-api/internal/domain"
	"github.com/quillworks/quill-api/internal/store"
	"github.com/quillworks/quill-api/internal/task"
)

// TaskFactory creates generation tasks for newly created posts.
type TaskFactory interface {
	// CreateTask creates a new generation task for the specified post.
	CreateTask(postID uuid.UUID) (task.Task, error)
}

// PostService provides blog post operations. Client-facing methods are
// scoped by owner; the worker-facing methods (GetPostForGeneration,
// CompleteGeneration) address posts by ID alone.
type PostService interface {
	// CreatePostAndEnqueueTask creates a new post in pending status and
	// submits a background generation task for it. The pending post is
	// returned immediately; the caller does not wait for generation.
	CreatePostAndEnqueueTask(ctx context.Context, ownerID uuid.UUID, title string) (*domain.Post, error)

	// GetPost retrieves a post owned by the caller.
	GetPost(ctx context.Context, ownerID, postID uuid.UUID) (*domain.Post, error)

	// ListPosts returns all posts owned by the caller.
	ListPosts(ctx context.Context, ownerID uuid.UUID) ([]*domain.Post, error)

	// UpdatePost applies a partial update to a post owned by the caller and
	// returns the updated post.
	UpdatePost(ctx context.Context, ownerID, postID uuid.UUID, update store.PostUpdate) (*domain.Post, error)

	// DeletePost removes a post owned by the caller.
	DeletePost(ctx context.Context, ownerID, postID uuid.UUID) error

	// GetPostForGeneration retrieves a post by ID for the background worker.
	GetPostForGeneration(ctx context.Context, postID uuid.UUID) (*domain.Post, error)

	// CompleteGeneration writes the generation outcome to a post.
	CompleteGeneration(ctx context.Context, postID uuid.UUID, status domain.PostStatus, content string) error
}

// Common sentinel errors for PostService
var (
	// ErrPostNotFound indicates that the post does not exist or is owned by
	// someone else.
	ErrPostNotFound = errors.New("post not found")
)

// PostServiceError wraps errors from the post service with context.
type PostServiceError struct {
	// Operation is the operation that failed (e.g., "create_post")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for PostServiceError.
func (e *PostServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("post service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("post service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PostServiceError) Unwrap() error {
	return e.Err
}

// newPostServiceError wraps err unless it is a sentinel that callers match on.
func newPostServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	// Store-level not-found maps to the service-level sentinel.
	if errors.Is(err, ErrPostNotFound) || errors.Is(err, store.ErrPostNotFound) {
		return ErrPostNotFound
	}

	return &PostServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	db          *sql.DB
	posts       store.PostStore
	taskRunner  task.Runner
	taskFactory TaskFactory
	logger      *slog.Logger
}

// Ensure the service satisfies the task package's writer interface.
var _ task.PostWriter = (PostService)(nil)

// NewPostService creates a new PostService.
// It returns an error if any of the required dependencies are nil.
func NewPostService(
	db *sql.DB,
	posts store.PostStore,
	taskRunner task.Runner,
	taskFactory TaskFactory,
	logger *slog.Logger,
) (PostService, error) {
	if db == nil {
		return nil, &PostServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if posts == nil {
		return nil, &PostServiceError{Operation: "create_service", Message: "posts cannot be nil"}
	}
	if taskRunner == nil {
		return nil, &PostServiceError{Operation: "create_service", Message: "taskRunner cannot be nil"}
	}
	if taskFactory == nil {
		return nil, &PostServiceError{Operation: "create_service", Message: "taskFactory cannot be nil"}
	}
	if logger == nil {
		return nil, &PostServiceError{Operation: "create_service", Message: "logger cannot be nil"}
	}

	return &postServiceImpl{
		db:          db,
		posts:       posts,
		taskRunner:  taskRunner,
		taskFactory: taskFactory,
		logger:      logger,
	}, nil
}

// CreatePostAndEnqueueTask creates the post in a transaction and then
// submits the generation task. Submission failure does not fail the request:
// the post is marked failed instead, because the client already holds a
// record that would otherwise stay pending forever.
func (s *postServiceImpl) CreatePostAndEnqueueTask(
	ctx context.Context,
	ownerID uuid.UUID,
	title string,
) (*domain.Post, error) {
	post, err := domain.NewPost(ownerID, title)
	if err != nil {
		s.logger.Error("failed to create post object",
			"error", err,
			"owner_id", ownerID)
		return nil, newPostServiceError("create_post", "failed to create post object", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.posts.WithTx(tx).Create(ctx, post); err != nil {
			s.logger.Error("failed to create post in transaction",
				"error", err,
				"owner_id", ownerID,
				"post_id", post.ID)
			return newPostServiceError("create_post", "failed to save post to database", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post created with pending status",
		"post_id", post.ID,
		"owner_id", ownerID)

	genTask, err := s.taskFactory.CreateTask(post.ID)
	if err != nil {
		s.logger.Error("failed to create generation task",
			"error", err,
			"post_id", post.ID)
		s.markFailedToSchedule(ctx, post, err)
		return post, nil
	}

	if err := s.taskRunner.Submit(ctx, genTask); err != nil {
		s.logger.Error("failed to submit generation task",
			"error", err,
			"post_id", post.ID,
			"task_id", genTask.ID())
		s.markFailedToSchedule(ctx, post, err)
		return post, nil
	}

	s.logger.Info("generation task submitted",
		"post_id", post.ID,
		"task_id", genTask.ID())

	return post, nil
}

// markFailedToSchedule transitions a freshly created post to failed when its
// generation task could not be queued. Best effort: the post is returned to
// the client either way.
func (s *postServiceImpl) markFailedToSchedule(ctx context.Context, post *domain.Post, cause error) {
	content := fmt.Sprintf("Error generating content: %s", cause.Error())
	if err := s.posts.SetResult(ctx, post.ID, domain.PostStatusFailed, content); err != nil {
		s.logger.Error("failed to mark post as failed",
			"error", err,
			"post_id", post.ID)
		return
	}
	post.Status = domain.PostStatusFailed
	post.Content = content
}

// GetPost retrieves a post owned by the caller.
func (s *postServiceImpl) GetPost(
	ctx context.Context,
	ownerID, postID uuid.UUID,
) (*domain.Post, error) {
	post, err := s.posts.GetForOwner(ctx, ownerID, postID)
	if err != nil {
		return nil, newPostServiceError("get_post", "failed to get post", err)
	}
	return post, nil
}

// ListPosts returns all posts owned by the caller.
func (s *postServiceImpl) ListPosts(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Post, error) {
	posts, err := s.posts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, newPostServiceError("list_posts", "failed to list posts", err)
	}
	return posts, nil
}

// UpdatePost applies a partial update to a post owned by the caller.
func (s *postServiceImpl) UpdatePost(
	ctx context.Context,
	ownerID, postID uuid.UUID,
	update store.PostUpdate,
) (*domain.Post, error) {
	post, err := s.posts.UpdateFields(ctx, ownerID, postID, update)
	if err != nil {
		return nil, newPostServiceError("update_post", "failed to update post", err)
	}
	return post, nil
}

// DeletePost removes a post owned by the caller. A generation task already
// running for the post is not cancelled; it will detect the missing record
// and discard its result.
func (s *postServiceImpl) DeletePost(ctx context.Context, ownerID, postID uuid.UUID) error {
	if err := s.posts.Delete(ctx, ownerID, postID); err != nil {
		return newPostServiceError("delete_post", "failed to delete post", err)
	}
	return nil
}

// GetPostForGeneration retrieves a post by ID for the background worker.
func (s *postServiceImpl) GetPostForGeneration(
	ctx context.Context,
	postID uuid.UUID,
) (*domain.Post, error) {
	// The raw store error is passed through so the worker can match
	// store.ErrPostNotFound and exit silently.
	return s.posts.GetByID(ctx, postID)
}

// CompleteGeneration writes the generation outcome to a post.
func (s *postServiceImpl) CompleteGeneration(
	ctx context.Context,
	postID uuid.UUID,
	status domain.PostStatus,
	content string,
) error {
	return s.posts.SetResult(ctx, postID, status, content)
}
