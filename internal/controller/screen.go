package controller

import (
	"fmt"
	"go-forum-app/internal/data"
	"net/url"
)

// Screen is the navigation state of the client: exactly one of
// CategoryList, CategoryDetail or PostDetail.
type Screen interface {
	// Path is the browser URL that renders the screen.
	Path() string
	isScreen()
}

// CategoryList is the initial screen. It auto-selects the first category.
type CategoryList struct{}

// CategoryDetail lists the posts of one category and offers a new-post form.
type CategoryDetail struct {
	Category string
}

// PostDetail shows one post with its comments and a comment form.
type PostDetail struct {
	PostID data.PostID
}

func (CategoryList) isScreen()   {}
func (CategoryDetail) isScreen() {}
func (PostDetail) isScreen()     {}

func (CategoryList) Path() string { return "/" }

func (s CategoryDetail) Path() string {
	return "/categories/" + url.PathEscape(s.Category)
}

func (s PostDetail) Path() string {
	return fmt.Sprintf("/posts/%d", s.PostID)
}
