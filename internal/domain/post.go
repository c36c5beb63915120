package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the generation state of a blog post.
type PostStatus string

// Possible post status values. A post is created as pending and reaches
// exactly one terminal status; there are no further automatic transitions.
const (
	PostStatusPending   PostStatus = "pending"
	PostStatusCompleted PostStatus = "completed"
	PostStatusFailed    PostStatus = "failed"
	PostStatusTimeout   PostStatus = "timeout"
)

// Common validation errors for Post
var (
	ErrEmptyPostID       = errors.New("post ID cannot be empty")
	ErrEmptyPostOwnerID  = errors.New("post owner ID cannot be empty")
	ErrEmptyPostTitle    = errors.New("post title cannot be empty")
	ErrPostTitleTooLong  = errors.New("post title must be at most 150 characters long")
	ErrInvalidPostStatus = errors.New("invalid post status")
)

// Post represents a blog entry. Content starts empty and is filled in by the
// background generation worker, which also applies the terminal status.
type Post struct {
	ID        uuid.UUID  `json:"id"`
	OwnerID   uuid.UUID  `json:"owner_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewPost creates a new Post owned by the given user with the given title.
// It generates a new UUID for the post ID, sets the status to pending with
// empty content, and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewPost(ownerID uuid.UUID, title string) (*Post, error) {
	post := &Post{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Content:   "",
		Status:    PostStatusPending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
// Returns an error if any field fails validation.
func (p *Post) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPostID
	}

	if p.OwnerID == uuid.Nil {
		return ErrEmptyPostOwnerID
	}

	if p.Title == "" {
		return ErrEmptyPostTitle
	}

	if len(p.Title) > 150 {
		return ErrPostTitleTooLong
	}

	if !isValidPostStatus(p.Status) {
		return ErrInvalidPostStatus
	}

	return nil
}

// UpdateStatus updates the post's status and refreshes the UpdatedAt timestamp.
// Returns an error if the new status is invalid.
func (p *Post) UpdateStatus(status PostStatus) error {
	if !isValidPostStatus(status) {
		return ErrInvalidPostStatus
	}

	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// IsTerminal reports whether the status is one of the terminal states
// applied by the generation worker.
func (s PostStatus) IsTerminal() bool {
	switch s {
	case PostStatusCompleted, PostStatusFailed, PostStatusTimeout:
		return true
	default:
		return false
	}
}

// isValidPostStatus checks if the given status is a valid PostStatus.
func isValidPostStatus(status PostStatus) bool {
	switch status {
	case PostStatusPending, PostStatusCompleted, PostStatusFailed, PostStatusTimeout:
		return true
	default:
		return false
	}
}
