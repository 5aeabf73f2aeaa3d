package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const postColumns = `id, title, content, created_at, author, category`

// SQLPostRepository is a concrete implementation of the PostRepository interface using sqlx.
type SQLPostRepository struct {
	db *sqlx.DB
}

// NewSQLPostRepository creates a new SQLPostRepository.
func NewSQLPostRepository(db *sqlx.DB) *SQLPostRepository {
	return &SQLPostRepository{db: db}
}

// CreatePost inserts a new post and returns the id assigned to it.
// post.ID is updated with the assigned value.
func (r *SQLPostRepository) CreatePost(ctx context.Context, post *Post) (PostID, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin create post transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertPost(ctx, tx, post); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit post: %w", err)
	}
	return post.ID, nil
}

// CreateSeededPosts inserts posts as the named one-off seed. If the seed has
// already been applied nothing is written and an empty slice is returned.
func (r *SQLPostRepository) CreateSeededPosts(ctx context.Context, seed string, posts []*Post) ([]PostID, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var applied int
	if err := tx.GetContext(ctx, &applied, `SELECT COUNT(*) FROM seed_runs WHERE name = ?`, seed); err != nil {
		return nil, fmt.Errorf("failed to check seed %s: %w", seed, err)
	}
	if applied > 0 {
		return []PostID{}, nil
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO seed_runs (name, applied_at) VALUES (?, ?)`, seed, time.Now().UnixNano()); err != nil {
		return nil, fmt.Errorf("failed to record seed %s: %w", seed, err)
	}

	ids := make([]PostID, 0, len(posts))
	for _, post := range posts {
		if err := insertPost(ctx, tx, post); err != nil {
			return nil, err
		}
		ids = append(ids, post.ID)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed %s: %w", seed, err)
	}
	return ids, nil
}

func insertPost(ctx context.Context, tx *sqlx.Tx, post *Post) error {
	id, err := nextID(ctx, tx, postSequence)
	if err != nil {
		return err
	}
	post.ID = id

	query := `INSERT INTO posts (id, title, content, created_at, author, category) VALUES (:id, :title, :content, :created_at, :author, :category)`
	if _, err := tx.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("failed to execute create post query: %w", err)
	}
	return nil
}

// GetPostByID retrieves a single post by its ID. A missing post is (nil, nil).
func (r *SQLPostRepository) GetPostByID(ctx context.Context, id PostID) (*Post, error) {
	var post Post
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ?`
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return &post, nil
}

// GetPostsByCategory retrieves all posts of a category in creation order.
func (r *SQLPostRepository) GetPostsByCategory(ctx context.Context, category string) ([]Post, error) {
	posts := []Post{}
	query := `SELECT ` + postColumns + ` FROM posts WHERE category = ? ORDER BY id`
	if err := r.db.SelectContext(ctx, &posts, query, category); err != nil {
		return nil, fmt.Errorf("failed to get posts by category: %w", err)
	}
	return posts, nil
}

// GetAllPosts retrieves every post in creation order.
func (r *SQLPostRepository) GetAllPosts(ctx context.Context) ([]Post, error) {
	posts := []Post{}
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY id`
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("failed to get all posts: %w", err)
	}
	return posts, nil
}

// CountByCategory returns the number of posts per category name.
// Categories without posts are absent from the result.
func (r *SQLPostRepository) CountByCategory(ctx context.Context) (map[string]uint64, error) {
	var stats []CategoryStats
	query := `SELECT category, COUNT(*) AS post_count FROM posts GROUP BY category`
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to count posts by category: %w", err)
	}
	counts := make(map[string]uint64, len(stats))
	for _, s := range stats {
		counts[s.Category] = s.PostCount
	}
	return counts, nil
}

// GetLatestPost returns the post with the greatest creation time in the
// category, preferring the higher id on ties. It returns (nil, nil) for an
// empty category.
func (r *SQLPostRepository) GetLatestPost(ctx context.Context, category string) (*Post, error) {
	var post Post
	query := `SELECT ` + postColumns + ` FROM posts WHERE category = ? ORDER BY created_at DESC, id DESC LIMIT 1`
	if err := r.db.GetContext(ctx, &post, query, category); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest post: %w", err)
	}
	return &post, nil
}
