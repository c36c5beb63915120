package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks/quill-api/internal/domain"
	"github.com/quillworks/quill-api/internal/mocks"
	"github.com/quillworks/quill-api/internal/service"
	"github.com/quillworks/quill-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, posts store.PostStore, runner *mocks.MockTaskRunner, factory *mocks.MockTaskFactory) service.PostService {
	t.Helper()

	if runner == nil {
		runner = &mocks.MockTaskRunner{}
	}
	if factory == nil {
		factory = &mocks.MockTaskFactory{}
	}

	svc, err := service.NewPostService(mocks.NewDB(), posts, runner, factory, testLogger())
	require.NoError(t, err)
	return svc
}

func TestNewPostService_Validation(t *testing.T) {
	t.Parallel()

	posts := mocks.NewMockPostStore()
	runner := &mocks.MockTaskRunner{}
	factory := &mocks.MockTaskFactory{}
	logger := testLogger()
	db := mocks.NewDB()

	tests := []struct {
		name string
		fn   func() (service.PostService, error)
	}{
		{"nil db", func() (service.PostService, error) { return service.NewPostService(nil, posts, runner, factory, logger) }},
		{"nil posts", func() (service.PostService, error) { return service.NewPostService(db, nil, runner, factory, logger) }},
		{"nil runner", func() (service.PostService, error) { return service.NewPostService(db, posts, nil, factory, logger) }},
		{"nil factory", func() (service.PostService, error) { return service.NewPostService(db, posts, runner, nil, logger) }},
		{"nil logger", func() (service.PostService, error) { return service.NewPostService(db, posts, runner, factory, nil) }},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, err := tc.fn()
			assert.Nil(t, svc)
			assert.Error(t, err)
		})
	}
}

func TestCreatePostAndEnqueueTask(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("creates pending post and submits task", func(t *testing.T) {
		t.Parallel()

		posts := mocks.NewMockPostStore()
		runner := &mocks.MockTaskRunner{}
		svc := newTestService(t, posts, runner, nil)

		post, err := svc.CreatePostAndEnqueueTask(context.Background(), ownerID, "Generics in Go")

		require.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, domain.PostStatusPending, post.Status)
		assert.Empty(t, post.Content)
		assert.Equal(t, ownerID, post.OwnerID)

		require.Len(t, posts.Posts, 1)
		assert.Equal(t, 1, runner.SubmittedCount())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		t.Parallel()

		posts := mocks.NewMockPostStore()
		runner := &mocks.MockTaskRunner{}
		svc := newTestService(t, posts, runner, nil)

		post, err := svc.CreatePostAndEnqueueTask(context.Background(), ownerID, "")

		assert.Nil(t, post)
		assert.Error(t, err)
		assert.Zero(t, runner.SubmittedCount())
	})

	t.Run("store failure fails the request", func(t *testing.T) {
		t.Parallel()

		posts := mocks.NewMockPostStore()
		posts.CreateFn = func(ctx context.Context, post *domain.Post) error {
			return errors.New("insert failed")
		}
		runner := &mocks.MockTaskRunner{}
		svc := newTestService(t, posts, runner, nil)

		post, err := svc.CreatePostAndEnqueueTask(context.Background(), ownerID, "A title")

		assert.Nil(t, post)
		require.Error(t, err)
		assert.Zero(t, runner.SubmittedCount())
	})

	t.Run("full queue marks post failed but returns it", func(t *testing.T) {
		t.Parallel()

		posts := mocks.NewMockPostStore()
		runner := &mocks.MockTaskRunner{SubmitErr: errors.New("task queue is full, try again later")}
		svc := newTestService(t, posts, runner, nil)

		post, err := svc.CreatePostAndEnqueueTask(context.Background(), ownerID, "A title")

		require.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, domain.PostStatusFailed, post.Status)
		assert.Contains(t, post.Content, "Error generating content")

		// The stored row carries the same terminal state.
		stored, err := posts.GetByID(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PostStatusFailed, stored.Status)
	})

	t.Run("factory failure marks post failed but returns it", func(t *testing.T) {
		t.Parallel()

		posts := mocks.NewMockPostStore()
		factory := &mocks.MockTaskFactory{Err: errors.New("no template")}
		runner := &mocks.MockTaskRunner{}
		svc := newTestService(t, posts, runner, factory)

		post, err := svc.CreatePostAndEnqueueTask(context.Background(), ownerID, "A title")

		require.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, domain.PostStatusFailed, post.Status)
		assert.Zero(t, runner.SubmittedCount())
	})
}

func TestGetPost(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	otherOwner := uuid.New()

	posts := mocks.NewMockPostStore()
	post, err := domain.NewPost(ownerID, "Mine")
	require.NoError(t, err)
	require.NoError(t, posts.Create(context.Background(), post))

	svc := newTestService(t, posts, nil, nil)

	t.Run("owner can read the post", func(t *testing.T) {
		t.Parallel()

		got, err := svc.GetPost(context.Background(), ownerID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, got.ID)
	})

	t.Run("another owner's lookup maps to not found", func(t *testing.T) {
		t.Parallel()

		got, err := svc.GetPost(context.Background(), otherOwner, post.ID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, service.ErrPostNotFound)
	})

	t.Run("missing post maps to not found", func(t *testing.T) {
		t.Parallel()

		got, err := svc.GetPost(context.Background(), ownerID, uuid.New())
		assert.Nil(t, got)
		assert.ErrorIs(t, err, service.ErrPostNotFound)
	})
}

func TestListPosts(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	posts := mocks.NewMockPostStore()

	first, err := domain.NewPost(ownerID, "First")
	require.NoError(t, err)
	second, err := domain.NewPost(ownerID, "Second")
	require.NoError(t, err)
	other, err := domain.NewPost(uuid.New(), "Theirs")
	require.NoError(t, err)

	for _, p := range []*domain.Post{first, second, other} {
		require.NoError(t, posts.Create(context.Background(), p))
	}

	svc := newTestService(t, posts, nil, nil)

	got, err := svc.ListPosts(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Title)
	assert.Equal(t, "Second", got[1].Title)
}

func TestUpdatePost(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	posts := mocks.NewMockPostStore()
	post, err := domain.NewPost(ownerID, "Original title")
	require.NoError(t, err)
	require.NoError(t, posts.Create(context.Background(), post))

	svc := newTestService(t, posts, nil, nil)

	t.Run("updates supplied fields only", func(t *testing.T) {
		newTitle := "Edited title"
		got, err := svc.UpdatePost(context.Background(), ownerID, post.ID, store.PostUpdate{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "Edited title", got.Title)
		assert.Empty(t, got.Content)
	})

	t.Run("missing post maps to not found", func(t *testing.T) {
		newTitle := "x"
		got, err := svc.UpdatePost(context.Background(), ownerID, uuid.New(), store.PostUpdate{Title: &newTitle})
		assert.Nil(t, got)
		assert.ErrorIs(t, err, service.ErrPostNotFound)
	})
}

func TestDeletePost(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	posts := mocks.NewMockPostStore()
	post, err := domain.NewPost(ownerID, "Doomed")
	require.NoError(t, err)
	require.NoError(t, posts.Create(context.Background(), post))

	svc := newTestService(t, posts, nil, nil)

	require.NoError(t, svc.DeletePost(context.Background(), ownerID, post.ID))

	err = svc.DeletePost(context.Background(), ownerID, post.ID)
	assert.ErrorIs(t, err, service.ErrPostNotFound)
}

func TestWorkerFacingMethods(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	posts := mocks.NewMockPostStore()
	post, err := domain.NewPost(ownerID, "Worker target")
	require.NoError(t, err)
	require.NoError(t, posts.Create(context.Background(), post))

	svc := newTestService(t, posts, nil, nil)

	t.Run("GetPostForGeneration ignores ownership", func(t *testing.T) {
		got, err := svc.GetPostForGeneration(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, got.ID)
	})

	t.Run("GetPostForGeneration surfaces the store sentinel", func(t *testing.T) {
		_, err := svc.GetPostForGeneration(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrPostNotFound)
	})

	t.Run("CompleteGeneration writes status and content", func(t *testing.T) {
		err := svc.CompleteGeneration(context.Background(), post.ID, domain.PostStatusCompleted, "done")
		require.NoError(t, err)

		got, err := posts.GetByID(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PostStatusCompleted, got.Status)
		assert.Equal(t, "done", got.Content)
	})
}
