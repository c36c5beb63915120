package task_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks/quill-api/internal/domain"
	"github.com/quillworks/quill-api/internal/mocks"
	"github.com/quillworks/quill-api/internal/store"
	"github.com/quillworks/quill-api/internal/task"
)

func TestNewPostWriterAdapter(t *testing.T) {
	t.Parallel()

	t.Run("nil store is rejected", func(t *testing.T) {
		t.Parallel()

		adapter, err := task.NewPostWriterAdapter(nil)
		assert.Error(t, err)
		assert.Nil(t, adapter)
	})

	t.Run("valid store is accepted", func(t *testing.T) {
		t.Parallel()

		adapter, err := task.NewPostWriterAdapter(mocks.NewMockPostStore())
		require.NoError(t, err)
		assert.NotNil(t, adapter)
	})
}

func TestPostWriterAdapter_GetPostForGeneration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	posts := mocks.NewMockPostStore()
	adapter, err := task.NewPostWriterAdapter(posts)
	require.NoError(t, err)

	post, err := domain.NewPost(uuid.New(), "Ode to a SQL Index")
	require.NoError(t, err)
	require.NoError(t, posts.Create(ctx, post))

	t.Run("returns the post regardless of owner", func(t *testing.T) {
		t.Parallel()

		got, err := adapter.GetPostForGeneration(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, got.ID)
		assert.Equal(t, post.Title, got.Title)
	})

	t.Run("unknown post surfaces the store sentinel", func(t *testing.T) {
		t.Parallel()

		_, err := adapter.GetPostForGeneration(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrPostNotFound)
	})
}

func TestPostWriterAdapter_CompleteGeneration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	posts := mocks.NewMockPostStore()
	adapter, err := task.NewPostWriterAdapter(posts)
	require.NoError(t, err)

	post, err := domain.NewPost(uuid.New(), "How Compilers Dream")
	require.NoError(t, err)
	require.NoError(t, posts.Create(ctx, post))

	err = adapter.CompleteGeneration(ctx, post.ID, domain.PostStatusCompleted, "Generated body.")
	require.NoError(t, err)

	stored, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PostStatusCompleted, stored.Status)
	assert.Equal(t, "Generated body.", stored.Content)
}
