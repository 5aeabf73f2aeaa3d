package controller

import (
	"context"
	"errors"
	"fmt"
	"go-forum-app/internal/data"
	"go-forum-app/internal/logger"
	"go-forum-app/internal/service"
	"sync"
)

// ErrStale is returned by Navigate when a newer navigation started before
// this one finished. Its result must not be rendered.
var ErrStale = errors.New("navigation superseded")

// View is everything needed to render one screen.
type View struct {
	Screen Screen
	// Categories feeds the sidebar. It is empty when the summaries could not be fetched.
	Categories []data.CategoryInfo
	Posts      []data.Post
	Post       *data.Post
	Comments   []data.Comment
	// Notice is a plain-text error message. When set, the screen stopped rendering there.
	Notice   string
	NotFound bool
}

// Controller drives the client screens through the forum contract.
// It is safe for concurrent use; only the latest navigation may produce a view.
type Controller struct {
	forum service.Forum
	log   logger.Logger

	mu     sync.Mutex
	token  uint64
	cancel context.CancelFunc
}

// New creates a Controller backed by forum.
func New(forum service.Forum, log logger.Logger) *Controller {
	return &Controller{forum: forum, log: log}
}

// Navigate fetches the data for screen and builds its view. A nil view with a
// nil error means the screen silently aborted.
func (c *Controller) Navigate(ctx context.Context, screen Screen) (*View, error) {
	ctx, token, done := c.begin(ctx)
	defer done()

	var view *View
	switch s := screen.(type) {
	case CategoryList:
		view = c.categoryList(ctx)
	case CategoryDetail:
		view = c.categoryDetail(ctx, s, c.sidebar(ctx))
	case PostDetail:
		view = c.postDetail(ctx, s)
	default:
		return nil, fmt.Errorf("unknown screen %T", screen)
	}

	if !c.current(token) {
		return nil, ErrStale
	}
	return view, nil
}

// SubmitPost creates a post in the category of screen and returns the screen to show next.
// On failure the error is returned and the caller stays on screen.
func (c *Controller) SubmitPost(ctx context.Context, screen CategoryDetail, title, content string) (Screen, error) {
	if _, err := c.forum.CreatePost(ctx, screen.Category, title, content); err != nil {
		return screen, fmt.Errorf("failed to create post: %w", err)
	}
	return screen, nil
}

// SubmitComment adds a comment to the post of screen and returns the screen to show next.
func (c *Controller) SubmitComment(ctx context.Context, screen PostDetail, content string) (Screen, error) {
	if _, err := c.forum.AddComment(ctx, screen.PostID, content); err != nil {
		return screen, fmt.Errorf("failed to add comment: %w", err)
	}
	return screen, nil
}

func (c *Controller) categoryList(ctx context.Context) *View {
	infos, err := c.forum.GetCategoriesInfo(ctx)
	if err != nil {
		c.log.Error(err, "Failed to load categories")
		return nil
	}
	if len(infos) == 0 {
		return &View{Screen: CategoryList{}, Categories: infos}
	}
	return c.categoryDetail(ctx, CategoryDetail{Category: infos[0].Category.Name}, infos)
}

func (c *Controller) categoryDetail(ctx context.Context, s CategoryDetail, sidebar []data.CategoryInfo) *View {
	view := &View{Screen: s, Categories: sidebar}
	posts, err := c.forum.GetPostsByCategory(ctx, s.Category)
	if err != nil {
		c.log.Error(err, "Failed to load posts")
		view.Notice = "Error loading posts: " + err.Error()
		return view
	}
	view.Posts = posts
	return view
}

func (c *Controller) postDetail(ctx context.Context, s PostDetail) *View {
	view := &View{Screen: s, Categories: c.sidebar(ctx)}
	post, err := c.forum.GetPost(ctx, s.PostID)
	if err != nil {
		c.log.Error(err, "Failed to load post")
		view.Notice = "Error loading post: " + err.Error()
		return view
	}
	if post == nil {
		view.NotFound = true
		view.Notice = "Post not found"
		return view
	}
	view.Post = post

	comments, err := c.forum.GetCommentsByPost(ctx, s.PostID)
	if err != nil {
		c.log.Error(err, "Failed to load comments")
		view.Notice = "Error loading comments: " + err.Error()
		return view
	}
	view.Comments = comments
	return view
}

// sidebar fetches the category summaries. A failure leaves the sidebar empty.
func (c *Controller) sidebar(ctx context.Context) []data.CategoryInfo {
	infos, err := c.forum.GetCategoriesInfo(ctx)
	if err != nil {
		c.log.Error(err, "Failed to load categories")
		return nil
	}
	return infos
}

// begin starts a navigation: it takes the next token and cancels the
// navigation in flight, if any.
func (c *Controller) begin(ctx context.Context) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.token++
	token := c.token
	c.cancel = cancel
	c.mu.Unlock()

	return ctx, token, func() {
		c.mu.Lock()
		if c.token == token {
			c.cancel = nil
		}
		c.mu.Unlock()
		cancel()
	}
}

func (c *Controller) current(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token == token
}
