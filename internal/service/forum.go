package service

import (
	"context"
	"errors"
	"go-forum-app/internal/data"
)

var (
	// ErrUnknownCategory is returned when a post names a category that does not exist.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownPost is returned when a comment references a post that does not exist.
	ErrUnknownPost = errors.New("unknown post")
)

// Forum is the remote service contract consumed by clients.
// The caller's identity is taken from the context (see package principal).
type Forum interface {
	CreatePost(ctx context.Context, category, title, content string) (data.PostID, error)
	AddComment(ctx context.Context, postID data.PostID, content string) (data.CommentID, error)
	// GetPost returns nil, without an error, when the post does not exist.
	GetPost(ctx context.Context, postID data.PostID) (*data.Post, error)
	GetPostsByCategory(ctx context.Context, category string) ([]data.Post, error)
	GetCommentsByPost(ctx context.Context, postID data.PostID) ([]data.Comment, error)
	GetCategoriesInfo(ctx context.Context) ([]data.CategoryInfo, error)
	CreateSamplePosts(ctx context.Context) ([]data.PostID, error)
}

// PostRepository defines the interface for database operations on posts.
type PostRepository interface {
	CreatePost(ctx context.Context, post *data.Post) (data.PostID, error)
	CreateSeededPosts(ctx context.Context, seed string, posts []*data.Post) ([]data.PostID, error)
	GetPostByID(ctx context.Context, id data.PostID) (*data.Post, error)
	GetPostsByCategory(ctx context.Context, category string) ([]data.Post, error)
	CountByCategory(ctx context.Context) (map[string]uint64, error)
	GetLatestPost(ctx context.Context, category string) (*data.Post, error)
}

// CommentRepository defines the interface for database operations on comments.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *data.Comment) (data.CommentID, error)
	GetCommentsByPost(ctx context.Context, postID data.PostID) ([]data.Comment, error)
}

// CategoryRepository defines the interface for database operations on categories.
type CategoryRepository interface {
	FindByName(ctx context.Context, name string) (*data.Category, error)
	GetAll(ctx context.Context) ([]data.Category, error)
}
