package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/quillworks/quill-api/internal/domain"
)

// PostUpdate carries the fields of a client-issued partial update.
// A nil pointer means "not provided"; the stored value is left untouched.
// Status is never part of a client update.
type PostUpdate struct {
	Title   *string
	Content *string
}

// IsEmpty reports whether the update carries no fields at all.
func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil
}

// PostStore defines the interface for blog post persistence.
//
// All owner-scoped methods treat a post owned by a different user exactly
// like a nonexistent one and return ErrPostNotFound.
type PostStore interface {
	// Create saves a new post to the store.
	// It handles domain validation internally.
	// Returns ErrInvalidEntity if the owner does not exist (foreign key violation).
	Create(ctx context.Context, post *domain.Post) error

	// GetForOwner retrieves a post by ID, scoped to the given owner.
	// Returns ErrPostNotFound if no such post is owned by the caller.
	GetForOwner(ctx context.Context, ownerID, postID uuid.UUID) (*domain.Post, error)

	// GetByID retrieves a post by ID without an ownership check. This is the
	// background worker's read path; client reads go through GetForOwner.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, postID uuid.UUID) (*domain.Post, error)

	// ListByOwner returns all posts owned by the given user in insertion order.
	// Returns an empty slice when the user owns no posts.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Post, error)

	// UpdateFields applies a partial update to a post, scoped to the given
	// owner. Only fields present in the update are written; the post's status
	// is never touched. Last writer wins - there is no version check against
	// a concurrent worker write-back.
	// Returns ErrPostNotFound if no such post is owned by the caller.
	UpdateFields(ctx context.Context, ownerID, postID uuid.UUID, update PostUpdate) (*domain.Post, error)

	// SetResult writes the generation outcome (content and terminal status)
	// to a post. Unlike the owner-scoped methods this addresses the post by
	// ID alone, because it is called by the background worker.
	// Returns ErrPostNotFound if the post has been deleted in the meantime.
	SetResult(ctx context.Context, postID uuid.UUID, status domain.PostStatus, content string) error

	// Delete removes a post, scoped to the given owner.
	// Returns ErrPostNotFound if no such post is owned by the caller.
	Delete(ctx context.Context, ownerID, postID uuid.UUID) error

	// WithTx returns a new PostStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) PostStore
}
