//go:build unit

package handler

import (
	"context"
	"errors"
	"go-forum-app/internal/controller"
	"go-forum-app/internal/data"
	"go-forum-app/internal/logger"
	"go-forum-app/internal/middleware"
	"go-forum-app/internal/service"
	"go-forum-app/internal/session"
	"go-forum-app/internal/view"
	"go-forum-app/web"
	"net/http"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// mockSessionManager is a mock implementation of the session.Manager interface.
type mockSessionManager struct {
	mu     sync.Mutex
	values map[string]interface{}
}

// Ensure mockSessionManager implements the session.Manager interface.
var _ session.Manager = (*mockSessionManager)(nil)

func (m *mockSessionManager) LoadAndSave(next http.Handler) http.Handler { return next }
func (m *mockSessionManager) Put(ctx context.Context, key string, val interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = map[string]interface{}{}
	}
	m.values[key] = val
}
func (m *mockSessionManager) GetString(ctx context.Context, key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, _ := m.values[key].(string)
	return s
}
func (m *mockSessionManager) PopString(ctx context.Context, key string) string {
	s := m.GetString(ctx, key)
	m.Remove(ctx, key)
	return s
}
func (m *mockSessionManager) Remove(ctx context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}
func (m *mockSessionManager) Destroy(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = nil
	return nil
}

// mockForum is an in-memory implementation of the service.Forum interface.
type mockForum struct {
	mu         sync.Mutex
	categories []data.Category
	posts      []data.Post
	comments   []data.Comment
	seeded     bool
	failReads  bool

	// blockCategory makes GetPostsByCategory wait for cancellation; blocked
	// is closed once the first such call is waiting.
	blockCategory string
	blocked       chan struct{}
	blockOnce     sync.Once
}

var _ service.Forum = (*mockForum)(nil)

func newMockForum() *mockForum {
	return &mockForum{categories: []data.Category{
		{Name: "General", Icon: "📣", Description: "General chat"},
		{Name: "Gaming", Icon: "🎮", Description: "Video games"},
	}}
}

func (m *mockForum) CreatePost(ctx context.Context, category, title, content string) (data.PostID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	known := false
	for _, c := range m.categories {
		known = known || c.Name == category
	}
	if !known {
		return 0, service.ErrUnknownCategory
	}
	id := data.PostID(len(m.posts))
	m.posts = append(m.posts, data.Post{ID: id, Title: title, Content: content, Category: category, CreatedAt: int64(id) + 1})
	return id, nil
}

func (m *mockForum) AddComment(ctx context.Context, postID data.PostID, content string) (data.CommentID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if postID >= data.PostID(len(m.posts)) {
		return 0, service.ErrUnknownPost
	}
	id := data.CommentID(len(m.comments))
	m.comments = append(m.comments, data.Comment{ID: id, Content: content, PostID: postID})
	return id, nil
}

func (m *mockForum) GetPost(ctx context.Context, postID data.PostID) (*data.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if postID >= data.PostID(len(m.posts)) {
		return nil, nil
	}
	p := m.posts[postID]
	return &p, nil
}

func (m *mockForum) GetPostsByCategory(ctx context.Context, category string) ([]data.Post, error) {
	if m.blockCategory != "" && category == m.blockCategory {
		m.blockOnce.Do(func() { close(m.blocked) })
		<-ctx.Done()
		return nil, ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []data.Post{}
	for _, p := range m.posts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockForum) GetCommentsByPost(ctx context.Context, postID data.PostID) ([]data.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []data.Comment{}
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockForum) GetCategoriesInfo(ctx context.Context) ([]data.CategoryInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return nil, errors.New("backend unavailable")
	}
	infos := []data.CategoryInfo{}
	for _, c := range m.categories {
		info := data.CategoryInfo{Category: c}
		for i := range m.posts {
			if m.posts[i].Category == c.Name {
				info.PostCount++
				p := m.posts[i]
				info.RecentPost = &p
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (m *mockForum) CreateSamplePosts(ctx context.Context) ([]data.PostID, error) {
	if m.seeded {
		return []data.PostID{}, nil
	}
	m.seeded = true
	id, err := m.CreatePost(ctx, "General", "Welcome", "Sample content")
	if err != nil {
		return nil, err
	}
	return []data.PostID{id}, nil
}

// newTestRouter wires the handlers around forum with mocks for everything else.
func newTestRouter(t *testing.T, forum service.Forum) (*chi.Mux, *mockSessionManager) {
	t.Helper()
	v, err := view.New(web.TemplateFS)
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	log := logger.Nop()
	sm := &mockSessionManager{}

	router := NewRouter(
		NewAPIHandler(forum),
		NewUIHandler(controller.NewRegistry(forum, log, 16), sm, v, log),
		NewSeoHandler(forum, "http://forum.test"),
		middleware.RequestLogger(log),
		middleware.Error(log, v),
		middleware.APIError(log),
		sm,
	)
	return router, sm
}
