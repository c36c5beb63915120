package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks/quill-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("alice", "correcthorse")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "correcthorse", user.Password)
		assert.Empty(t, user.HashedPassword)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("validation failures", func(t *testing.T) {
		t.Parallel()

		longName := make([]byte, 51)
		for i := range longName {
			longName[i] = 'a'
		}
		longPassword := make([]byte, 73)
		for i := range longPassword {
			longPassword[i] = 'p'
		}

		testCases := []struct {
			name     string
			username string
			password string
			wantErr  error
		}{
			{
				name:     "empty username",
				username: "",
				password: "correcthorse",
				wantErr:  domain.ErrEmptyUsername,
			},
			{
				name:     "username too long",
				username: string(longName),
				password: "correcthorse",
				wantErr:  domain.ErrUsernameTooLong,
			},
			{
				name:     "password too short",
				username: "alice",
				password: "short",
				wantErr:  domain.ErrPasswordTooShort,
			},
			{
				name:     "password too long",
				username: "alice",
				password: string(longPassword),
				wantErr:  domain.ErrPasswordTooLong,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				user, err := domain.NewUser(tc.username, tc.password)
				assert.Nil(t, user)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})
}

func TestUserValidate_StoredUser(t *testing.T) {
	t.Parallel()

	// A user loaded from the database has no plaintext password, only a hash.
	user := &domain.User{
		ID:             uuid.New(),
		Username:       "bob",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
}
