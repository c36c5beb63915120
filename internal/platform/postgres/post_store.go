package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quillworks/quill-api/internal/domain"
	"github.com/quillworks/quill-api/internal/platform/logger"
	"github.com/quillworks/quill-api/internal/store"
)

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the
// PostStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// Create implements store.PostStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	query := `
		INSERT INTO posts (id, owner_id, title, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		post.ID,
		post.OwnerID,
		post.Title,
		post.Content,
		post.Status,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("post creation references missing owner",
				slog.String("owner_id", post.OwnerID.String()))
			return fmt.Errorf("%w: owner does not exist", store.ErrInvalidEntity)
		}

		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	log.Debug("post created",
		slog.String("post_id", post.ID.String()),
		slog.String("owner_id", post.OwnerID.String()))
	return nil
}

// GetForOwner implements store.PostStore.GetForOwner
// The owner filter is part of the query itself, so a post owned by someone
// else is indistinguishable from a post that does not exist.
func (s *PostgresPostStore) GetForOwner(ctx context.Context, ownerID, postID uuid.UUID) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, content, status, created_at, updated_at
		FROM posts
		WHERE id = $1 AND owner_id = $2
	`

	post, err := s.scanPost(s.db.QueryRowContext(ctx, query, postID, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found for owner",
				slog.String("post_id", postID.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return nil, err
	}

	return post, nil
}

// GetByID implements store.PostStore.GetByID
func (s *PostgresPostStore) GetByID(ctx context.Context, postID uuid.UUID) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, content, status, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	post, err := s.scanPost(s.db.QueryRowContext(ctx, query, postID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found", slog.String("post_id", postID.String()))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post by ID",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return nil, err
	}

	return post, nil
}

// ListByOwner implements store.PostStore.ListByOwner
// Posts are returned in insertion order.
func (s *PostgresPostStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, content, status, created_at, updated_at
		FROM posts
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list posts",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		post, err := s.scanPost(rows)
		if err != nil {
			log.Error("failed to scan post row",
				slog.String("error", err.Error()),
				slog.String("owner_id", ownerID.String()))
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// UpdateFields implements store.PostStore.UpdateFields
// Only the fields present in the update are changed. An empty update still
// touches updated_at so the call always returns the current row.
func (s *PostgresPostStore) UpdateFields(ctx context.Context, ownerID, postID uuid.UUID, update store.PostUpdate) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE posts
		SET title = COALESCE($3, title),
		    content = COALESCE($4, content),
		    updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, title, content, status, created_at, updated_at
	`

	post, err := s.scanPost(s.db.QueryRowContext(ctx, query, postID, ownerID, update.Title, update.Content))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found for update",
				slog.String("post_id", postID.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to update post",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return nil, err
	}

	return post, nil
}

// SetResult implements store.PostStore.SetResult
// This is the only write that is not scoped by owner: it records the outcome
// of a generation run regardless of who owns the post.
func (s *PostgresPostStore) SetResult(ctx context.Context, postID uuid.UUID, status domain.PostStatus, content string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsTerminal() {
		return fmt.Errorf("%w: %q is not a terminal status", domain.ErrInvalidPostStatus, status)
	}

	query := `
		UPDATE posts
		SET status = $2, content = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, postID, status, content)
	if err != nil {
		log.Error("failed to set post result",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		log.Debug("post gone before result could be recorded",
			slog.String("post_id", postID.String()))
		return store.ErrPostNotFound
	}

	log.Info("post result recorded",
		slog.String("post_id", postID.String()),
		slog.String("status", string(status)))
	return nil
}

// Delete implements store.PostStore.Delete
func (s *PostgresPostStore) Delete(ctx context.Context, ownerID, postID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM posts WHERE id = $1 AND owner_id = $2`

	result, err := s.db.ExecContext(ctx, query, postID, ownerID)
	if err != nil {
		log.Error("failed to delete post",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrPostNotFound
	}

	log.Info("post deleted",
		slog.String("post_id", postID.String()),
		slog.String("owner_id", ownerID.String()))
	return nil
}

// WithTx implements store.PostStore.WithTx
func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostgresPostStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresPostStore) scanPost(row rowScanner) (*domain.Post, error) {
	var post domain.Post
	err := row.Scan(
		&post.ID,
		&post.OwnerID,
		&post.Title,
		&post.Content,
		&post.Status,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}
