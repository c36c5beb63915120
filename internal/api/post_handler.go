package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/quillworks/quill-api/internal/api/shared"
	"github.com/quillworks/quill-api/internal/service"
	"github.com/quillworks/quill-api/internal/store"
)

// PostHandler handles blog post HTTP requests. All routes require an
// authenticated user; the owner ID comes from the request context set by the
// auth middleware.
type PostHandler struct {
	postService service.PostService
	validator   *validator.Validate
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
		validator:   validator.New(),
	}
}

// CreatePost handles POST /api/blogs requests.
// The response carries the post in pending status; content arrives later
// through the background generation task.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := currentUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	post, err := h.postService.CreatePostAndEnqueueTask(r.Context(), ownerID, req.Title)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}

// ListPosts handles GET /api/blogs requests.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := currentUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	posts, err := h.postService.ListPosts(r.Context(), ownerID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, postToResponse(post))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetPost handles GET /api/blogs/{id} requests.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := currentUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.postService.GetPost(r.Context(), ownerID, postID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}

// UpdatePost handles PUT /api/blogs/{id} requests.
// Both fields are optional; absent fields keep their current values.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := currentUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	var req UpdatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	update := store.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
	}

	post, err := h.postService.UpdatePost(r.Context(), ownerID, postID, update)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}

// DeletePost handles DELETE /api/blogs/{id} requests.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := currentUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	if err := h.postService.DeletePost(r.Context(), ownerID, postID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// currentUserID extracts the authenticated user ID set by the auth middleware.
func currentUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// parsePostID reads the {id} URL parameter. A malformed ID is treated like a
// missing post so the handler responds 404 either way.
func parsePostID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
