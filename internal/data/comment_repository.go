package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLCommentRepository stores comments using sqlx.
type SQLCommentRepository struct {
	db *sqlx.DB
}

// NewSQLCommentRepository creates a new SQLCommentRepository.
func NewSQLCommentRepository(db *sqlx.DB) *SQLCommentRepository {
	return &SQLCommentRepository{db: db}
}

// CreateComment inserts a comment and returns the id assigned to it.
func (r *SQLCommentRepository) CreateComment(ctx context.Context, comment *Comment) (CommentID, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin create comment transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := nextID(ctx, tx, commentSequence)
	if err != nil {
		return 0, err
	}
	comment.ID = id

	query := `INSERT INTO comments (id, content, created_at, author, post_id) VALUES (:id, :content, :created_at, :author, :post_id)`
	if _, err := tx.NamedExecContext(ctx, query, comment); err != nil {
		return 0, fmt.Errorf("failed to execute create comment query: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit comment: %w", err)
	}
	return id, nil
}

// GetCommentsByPost retrieves the comments of a post in creation order.
func (r *SQLCommentRepository) GetCommentsByPost(ctx context.Context, postID PostID) ([]Comment, error) {
	comments := []Comment{}
	query := `SELECT id, content, created_at, author, post_id FROM comments WHERE post_id = ? ORDER BY id`
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to get comments by post: %w", err)
	}
	return comments, nil
}
