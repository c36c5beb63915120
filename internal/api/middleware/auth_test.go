package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks/quill-api/internal/api/shared"
	"github.com/quillworks/quill-api/internal/domain"
	"github.com/quillworks/quill-api/internal/mocks"
	"github.com/quillworks/quill-api/internal/service/auth"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("alice", "password123")
	require.NoError(t, err)

	newMiddleware := func(jwtService *mocks.MockJWTService) (*AuthMiddleware, *mocks.MockUserStore) {
		userStore := mocks.NewMockUserStore()
		userStore.Users["alice"] = user
		return NewAuthMiddleware(jwtService, userStore), userStore
	}

	// nextHandler records whether the chain continued and what the context held
	type captured struct {
		called   bool
		userID   uuid.UUID
		username string
	}

	runRequest := func(m *AuthMiddleware, authHeader string) (*httptest.ResponseRecorder, *captured) {
		cap := &captured{}
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cap.called = true
			cap.userID, _ = GetUserID(r)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/api/blogs", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		recorder := httptest.NewRecorder()
		m.Authenticate(next).ServeHTTP(recorder, req)
		return recorder, cap
	}

	t.Run("valid token passes user through", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{Claims: &auth.Claims{Username: "alice"}}
		m, _ := newMiddleware(jwtService)

		recorder, cap := runRequest(m, "Bearer valid-token")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, cap.called)
		assert.Equal(t, user.ID, cap.userID)
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()

		m, _ := newMiddleware(&mocks.MockJWTService{})
		recorder, cap := runRequest(m, "")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, cap.called)
	})

	t.Run("malformed header", func(t *testing.T) {
		t.Parallel()

		m, _ := newMiddleware(&mocks.MockJWTService{})
		recorder, cap := runRequest(m, "NotBearer token")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, cap.called)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken}
		m, _ := newMiddleware(jwtService)

		recorder, cap := runRequest(m, "Bearer expired-token")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Token expired")
		assert.False(t, cap.called)
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrInvalidToken}
		m, _ := newMiddleware(jwtService)

		recorder, cap := runRequest(m, "Bearer garbage")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, cap.called)
	})

	t.Run("token for a deleted user is rejected", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{Claims: &auth.Claims{Username: "ghost"}}
		m, _ := newMiddleware(jwtService)

		recorder, cap := runRequest(m, "Bearer orphan-token")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, cap.called)
	})
}

func TestGetUserID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/", nil)
	_, ok := GetUserID(req)
	assert.False(t, ok)

	id := uuid.New()
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, id)
	got, ok := GetUserID(req.WithContext(ctx))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
