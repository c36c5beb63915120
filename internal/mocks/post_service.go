package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/quillworks/quill-api/internal/domain"
	"github.com/quillworks/quill-api/internal/service"
	"github.com/quillworks/quill-api/internal/store"
)

// MockPostService implements service.PostService for testing
type MockPostService struct {
	CreatePostAndEnqueueTaskFn func(ctx context.Context, ownerID uuid.UUID, title string) (*domain.Post, error)
	GetPostFn                  func(ctx context.Context, ownerID, postID uuid.UUID) (*domain.Post, error)
	ListPostsFn                func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Post, error)
	UpdatePostFn               func(ctx context.Context, ownerID, postID uuid.UUID, update store.PostUpdate) (*domain.Post, error)
	DeletePostFn               func(ctx context.Context, ownerID, postID uuid.UUID) error
	GetPostForGenerationFn     func(ctx context.Context, postID uuid.UUID) (*domain.Post, error)
	CompleteGenerationFn       func(ctx context.Context, postID uuid.UUID, status domain.PostStatus, content string) error
}

// Ensure MockPostService implements service.PostService
var _ service.PostService = (*MockPostService)(nil)

// CreatePostAndEnqueueTask implements the service.PostService interface
func (m *MockPostService) CreatePostAndEnqueueTask(
	ctx context.Context,
	ownerID uuid.UUID,
	title string,
) (*domain.Post, error) {
	if m.CreatePostAndEnqueueTaskFn != nil {
		return m.CreatePostAndEnqueueTaskFn(ctx, ownerID, title)
	}
	return domain.NewPost(ownerID, title)
}

// GetPost implements the service.PostService interface
func (m *MockPostService) GetPost(ctx context.Context, ownerID, postID uuid.UUID) (*domain.Post, error) {
	if m.GetPostFn != nil {
		return m.GetPostFn(ctx, ownerID, postID)
	}
	return nil, service.ErrPostNotFound
}

// ListPosts implements the service.PostService interface
func (m *MockPostService) ListPosts(ctx context.Context, ownerID uuid.UUID) ([]*domain.Post, error) {
	if m.ListPostsFn != nil {
		return m.ListPostsFn(ctx, ownerID)
	}
	return []*domain.Post{}, nil
}

// UpdatePost implements the service.PostService interface
func (m *MockPostService) UpdatePost(
	ctx context.Context,
	ownerID, postID uuid.UUID,
	update store.PostUpdate,
) (*domain.Post, error) {
	if m.UpdatePostFn != nil {
		return m.UpdatePostFn(ctx, ownerID, postID, update)
	}
	return nil, service.ErrPostNotFound
}

// DeletePost implements the service.PostService interface
func (m *MockPostService) DeletePost(ctx context.Context, ownerID, postID uuid.UUID) error {
	if m.DeletePostFn != nil {
		return m.DeletePostFn(ctx, ownerID, postID)
	}
	return service.ErrPostNotFound
}

// GetPostForGeneration implements the service.PostService interface
func (m *MockPostService) GetPostForGeneration(ctx context.Context, postID uuid.UUID) (*domain.Post, error) {
	if m.GetPostForGenerationFn != nil {
		return m.GetPostForGenerationFn(ctx, postID)
	}
	return nil, store.ErrPostNotFound
}

// CompleteGeneration implements the service.PostService interface
func (m *MockPostService) CompleteGeneration(
	ctx context.Context,
	postID uuid.UUID,
	status domain.PostStatus,
	content string,
) error {
	if m.CompleteGenerationFn != nil {
		return m.CompleteGenerationFn(ctx, postID, status, content)
	}
	return nil
}
