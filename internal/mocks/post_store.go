package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quillworks/quill-api/internal/domain"
	"github.com/quillworks/quill-api/internal/store"
)

// MockPostStore implements store.PostStore for testing
type MockPostStore struct {
	// Function fields for customizable behavior
	CreateFn       func(ctx context.Context, post *domain.Post) error
	GetForOwnerFn  func(ctx context.Context, ownerID, postID uuid.UUID) (*domain.Post, error)
	GetByIDFn      func(ctx context.Context, postID uuid.UUID) (*domain.Post, error)
	ListByOwnerFn  func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Post, error)
	UpdateFieldsFn func(ctx context.Context, ownerID, postID uuid.UUID, update store.PostUpdate) (*domain.Post, error)
	SetResultFn    func(ctx context.Context, postID uuid.UUID, status domain.PostStatus, content string) error
	DeleteFn       func(ctx context.Context, ownerID, postID uuid.UUID) error

	// Data for default implementation, in insertion order
	mu    sync.Mutex
	Posts []*domain.Post
}

// NewMockPostStore creates a new mock store with initialized defaults
func NewMockPostStore() *MockPostStore {
	return &MockPostStore{}
}

// Create implements the PostStore interface
func (m *MockPostStore) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, post)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Posts = append(m.Posts, post)
	return nil
}

// GetForOwner implements the PostStore interface
func (m *MockPostStore) GetForOwner(ctx context.Context, ownerID, postID uuid.UUID) (*domain.Post, error) {
	if m.GetForOwnerFn != nil {
		return m.GetForOwnerFn(ctx, ownerID, postID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, post := range m.Posts {
		if post.ID == postID && post.OwnerID == ownerID {
			return post, nil
		}
	}

	return nil, store.ErrPostNotFound
}

// GetByID implements the PostStore interface
func (m *MockPostStore) GetByID(ctx context.Context, postID uuid.UUID) (*domain.Post, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, postID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, post := range m.Posts {
		if post.ID == postID {
			return post, nil
		}
	}

	return nil, store.ErrPostNotFound
}

// ListByOwner implements the PostStore interface
func (m *MockPostStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Post, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	posts := make([]*domain.Post, 0)
	for _, post := range m.Posts {
		if post.OwnerID == ownerID {
			posts = append(posts, post)
		}
	}

	return posts, nil
}

// UpdateFields implements the PostStore interface
func (m *MockPostStore) UpdateFields(
	ctx context.Context,
	ownerID, postID uuid.UUID,
	update store.PostUpdate,
) (*domain.Post, error) {
	if m.UpdateFieldsFn != nil {
		return m.UpdateFieldsFn(ctx, ownerID, postID, update)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, post := range m.Posts {
		if post.ID == postID && post.OwnerID == ownerID {
			if update.Title != nil {
				post.Title = *update.Title
			}
			if update.Content != nil {
				post.Content = *update.Content
			}
			post.UpdatedAt = time.Now().UTC()
			return post, nil
		}
	}

	return nil, store.ErrPostNotFound
}

// SetResult implements the PostStore interface
func (m *MockPostStore) SetResult(
	ctx context.Context,
	postID uuid.UUID,
	status domain.PostStatus,
	content string,
) error {
	if m.SetResultFn != nil {
		return m.SetResultFn(ctx, postID, status, content)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, post := range m.Posts {
		if post.ID == postID {
			post.Status = status
			post.Content = content
			post.UpdatedAt = time.Now().UTC()
			return nil
		}
	}

	return store.ErrPostNotFound
}

// Delete implements the PostStore interface
func (m *MockPostStore) Delete(ctx context.Context, ownerID, postID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, postID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, post := range m.Posts {
		if post.ID == postID && post.OwnerID == ownerID {
			m.Posts = append(m.Posts[:i], m.Posts[i+1:]...)
			return nil
		}
	}

	return store.ErrPostNotFound
}

// WithTx implements the PostStore interface. The mock has no transaction
// support, so it returns itself.
func (m *MockPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return m
}
