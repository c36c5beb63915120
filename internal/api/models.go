package api

import (
	"time"

	"github.com/quillworks/quill-api/internal/domain"
)

// RegisterRequest represents the register request body.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse represents the user data returned by the API.
// The password hash never appears in a response.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// TokenResponse represents a successful login response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreatePostRequest represents the request body for creating a new post.
// Only the title is supplied; content is written by the generation pipeline.
type CreatePostRequest struct {
	Title string `json:"title" validate:"required,min=1,max=150"`
}

// UpdatePostRequest represents the request body for a partial post update.
// Absent fields are left unchanged.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty"   validate:"omitempty,min=1,max=150"`
	Content *string `json:"content,omitempty"`
}

// PostResponse represents the response data for a post.
type PostResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// userToResponse converts a domain.User to a UserResponse
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
	}
}

// postToResponse converts a domain.Post to a PostResponse
func postToResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID.String(),
		OwnerID:   post.OwnerID.String(),
		Title:     post.Title,
		Content:   post.Content,
		Status:    string(post.Status),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
