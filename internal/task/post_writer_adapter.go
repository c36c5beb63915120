package task

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/quillworks/quill-api/internal/domain"
	"github.com/quillworks/quill-api/internal/store"
)

// PostWriterAdapter adapts a store.PostStore to the PostWriter interface.
// This breaks the construction cycle between the service layer (which needs
// a task factory) and the factory (which needs a writer): the factory can be
// wired straight to the store.
type PostWriterAdapter struct {
	posts store.PostStore
}

// NewPostWriterAdapter creates an adapter over the given post store.
func NewPostWriterAdapter(posts store.PostStore) (*PostWriterAdapter, error) {
	if posts == nil {
		return nil, errors.New("posts store cannot be nil")
	}
	return &PostWriterAdapter{posts: posts}, nil
}

// Ensure PostWriterAdapter implements PostWriter
var _ PostWriter = (*PostWriterAdapter)(nil)

// GetPostForGeneration retrieves a post by ID regardless of owner.
func (a *PostWriterAdapter) GetPostForGeneration(ctx context.Context, postID uuid.UUID) (*domain.Post, error) {
	return a.posts.GetByID(ctx, postID)
}

// CompleteGeneration writes the generation outcome to a post.
func (a *PostWriterAdapter) CompleteGeneration(
	ctx context.Context,
	postID uuid.UUID,
	status domain.PostStatus,
	content string,
) error {
	return a.posts.SetResult(ctx, postID, status, content)
}
