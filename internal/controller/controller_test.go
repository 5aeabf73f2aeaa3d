//go:build unit

package controller

import (
	"context"
	"errors"
	"go-forum-app/internal/data"
	"go-forum-app/internal/logger"
	"go-forum-app/internal/principal"
	"go-forum-app/internal/service"
	"sync"
	"testing"
	"time"
)

// mockForum is a mock implementation of the service.Forum interface.
// Unset functions return empty results.
type mockForum struct {
	createPostFn         func(ctx context.Context, category, title, content string) (data.PostID, error)
	addCommentFn         func(ctx context.Context, postID data.PostID, content string) (data.CommentID, error)
	getPostFn            func(ctx context.Context, postID data.PostID) (*data.Post, error)
	getPostsByCategoryFn func(ctx context.Context, category string) ([]data.Post, error)
	getCommentsFn        func(ctx context.Context, postID data.PostID) ([]data.Comment, error)
	getCategoriesInfoFn  func(ctx context.Context) ([]data.CategoryInfo, error)

	mu                   sync.Mutex
	categoriesInfoCalled int
	postsCalledWith      []string
	commentsCalled       int
}

var _ service.Forum = (*mockForum)(nil)

func (m *mockForum) CreatePost(ctx context.Context, category, title, content string) (data.PostID, error) {
	if m.createPostFn != nil {
		return m.createPostFn(ctx, category, title, content)
	}
	return 0, nil
}

func (m *mockForum) AddComment(ctx context.Context, postID data.PostID, content string) (data.CommentID, error) {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, postID, content)
	}
	return 0, nil
}

func (m *mockForum) GetPost(ctx context.Context, postID data.PostID) (*data.Post, error) {
	if m.getPostFn != nil {
		return m.getPostFn(ctx, postID)
	}
	return nil, nil
}

func (m *mockForum) GetPostsByCategory(ctx context.Context, category string) ([]data.Post, error) {
	m.mu.Lock()
	m.postsCalledWith = append(m.postsCalledWith, category)
	m.mu.Unlock()
	if m.getPostsByCategoryFn != nil {
		return m.getPostsByCategoryFn(ctx, category)
	}
	return []data.Post{}, nil
}

func (m *mockForum) GetCommentsByPost(ctx context.Context, postID data.PostID) ([]data.Comment, error) {
	m.mu.Lock()
	m.commentsCalled++
	m.mu.Unlock()
	if m.getCommentsFn != nil {
		return m.getCommentsFn(ctx, postID)
	}
	return []data.Comment{}, nil
}

func (m *mockForum) GetCategoriesInfo(ctx context.Context) ([]data.CategoryInfo, error) {
	m.mu.Lock()
	m.categoriesInfoCalled++
	m.mu.Unlock()
	if m.getCategoriesInfoFn != nil {
		return m.getCategoriesInfoFn(ctx)
	}
	return []data.CategoryInfo{}, nil
}

func (m *mockForum) CreateSamplePosts(ctx context.Context) ([]data.PostID, error) {
	return []data.PostID{}, nil
}

func twoCategories(ctx context.Context) ([]data.CategoryInfo, error) {
	return []data.CategoryInfo{
		{Category: data.Category{Name: "General", Icon: "📣", Description: "General chat"}},
		{Category: data.Category{Name: "Gaming", Icon: "🎮"}},
	}, nil
}

func TestNavigate_CategoryListSelectsFirstCategory(t *testing.T) {
	forum := &mockForum{getCategoriesInfoFn: twoCategories}
	c := New(forum, logger.Nop())

	view, err := c.Navigate(context.Background(), CategoryList{})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if view.Screen != (CategoryDetail{Category: "General"}) {
		t.Errorf("expected CategoryDetail for General, got %#v", view.Screen)
	}
	if len(view.Categories) != 2 {
		t.Errorf("expected 2 sidebar entries, got %d", len(view.Categories))
	}
	if forum.categoriesInfoCalled != 1 {
		t.Errorf("expected summaries to be fetched once, got %d", forum.categoriesInfoCalled)
	}
	if len(forum.postsCalledWith) != 1 || forum.postsCalledWith[0] != "General" {
		t.Errorf("expected posts of General to be fetched, got %v", forum.postsCalledWith)
	}
}

func TestNavigate_CategoryListEmpty(t *testing.T) {
	c := New(&mockForum{}, logger.Nop())

	view, err := c.Navigate(context.Background(), CategoryList{})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if view.Screen != (CategoryList{}) {
		t.Errorf("expected to stay on CategoryList, got %#v", view.Screen)
	}
}

func TestNavigate_CategoryListFailureAbortsSilently(t *testing.T) {
	forum := &mockForum{getCategoriesInfoFn: func(ctx context.Context) ([]data.CategoryInfo, error) {
		return nil, errors.New("backend down")
	}}
	c := New(forum, logger.Nop())

	view, err := c.Navigate(context.Background(), CategoryList{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if view != nil {
		t.Errorf("expected no view, got %+v", view)
	}
	if len(forum.postsCalledWith) != 0 {
		t.Error("expected no further fetches after the failure")
	}
}

func TestNavigate_CategoryDetailFailure(t *testing.T) {
	forum := &mockForum{
		getCategoriesInfoFn: twoCategories,
		getPostsByCategoryFn: func(ctx context.Context, category string) ([]data.Post, error) {
			return nil, errors.New("timeout")
		},
	}
	c := New(forum, logger.Nop())

	view, err := c.Navigate(context.Background(), CategoryDetail{Category: "Gaming"})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if view.Notice == "" {
		t.Error("expected an inline notice")
	}
	if len(view.Categories) != 2 {
		t.Error("expected the sidebar to survive a post fetch failure")
	}
}

func TestNavigate_PostDetail(t *testing.T) {
	post := &data.Post{ID: 3, Title: "Hello", Content: "World", Category: "General"}

	t.Run("found", func(t *testing.T) {
		forum := &mockForum{
			getPostFn: func(ctx context.Context, id data.PostID) (*data.Post, error) { return post, nil },
			getCommentsFn: func(ctx context.Context, id data.PostID) ([]data.Comment, error) {
				return []data.Comment{{ID: 0, Content: "Nice post", PostID: id}}, nil
			},
		}
		view, err := New(forum, logger.Nop()).Navigate(context.Background(), PostDetail{PostID: 3})
		if err != nil {
			t.Fatalf("Navigate failed: %v", err)
		}
		if view.Post != post || len(view.Comments) != 1 || view.Notice != "" {
			t.Errorf("unexpected view: %+v", view)
		}
	})

	t.Run("absent", func(t *testing.T) {
		forum := &mockForum{}
		view, err := New(forum, logger.Nop()).Navigate(context.Background(), PostDetail{PostID: 99})
		if err != nil {
			t.Fatalf("Navigate failed: %v", err)
		}
		if !view.NotFound {
			t.Error("expected NotFound to be set")
		}
		if forum.commentsCalled != 0 {
			t.Error("expected comments not to be fetched for an absent post")
		}
	})

	t.Run("comment failure halts", func(t *testing.T) {
		forum := &mockForum{
			getPostFn: func(ctx context.Context, id data.PostID) (*data.Post, error) { return post, nil },
			getCommentsFn: func(ctx context.Context, id data.PostID) ([]data.Comment, error) {
				return nil, errors.New("boom")
			},
		}
		view, err := New(forum, logger.Nop()).Navigate(context.Background(), PostDetail{PostID: 3})
		if err != nil {
			t.Fatalf("Navigate failed: %v", err)
		}
		if view.Notice == "" || view.Comments != nil {
			t.Errorf("expected a notice and no comments, got %+v", view)
		}
	})
}

func TestNavigate_StaleNavigationIsDiscarded(t *testing.T) {
	blocked := make(chan struct{})
	forum := &mockForum{
		getPostsByCategoryFn: func(ctx context.Context, category string) ([]data.Post, error) {
			if category == "Slow" {
				close(blocked)
				<-ctx.Done()
				return nil, ctx.Err()
			}
			return []data.Post{{Title: "fast"}}, nil
		},
	}
	c := New(forum, logger.Nop())

	type result struct {
		view *View
		err  error
	}
	slow := make(chan result, 1)
	go func() {
		v, err := c.Navigate(context.Background(), CategoryDetail{Category: "Slow"})
		slow <- result{v, err}
	}()
	<-blocked

	view, err := c.Navigate(context.Background(), CategoryDetail{Category: "Fast"})
	if err != nil {
		t.Fatalf("newer navigation failed: %v", err)
	}
	if len(view.Posts) != 1 {
		t.Errorf("expected the newer navigation to render, got %+v", view)
	}

	select {
	case res := <-slow:
		if !errors.Is(res.err, ErrStale) {
			t.Errorf("expected ErrStale for the superseded navigation, got %v", res.err)
		}
		if res.view != nil {
			t.Error("expected no view for the superseded navigation")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("superseded navigation was not cancelled")
	}
}

func TestSubmitPost(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotCategory string
		forum := &mockForum{createPostFn: func(ctx context.Context, category, title, content string) (data.PostID, error) {
			gotCategory = category
			return 0, nil
		}}
		next, err := New(forum, logger.Nop()).SubmitPost(context.Background(), CategoryDetail{Category: "General"}, "Hello", "World")
		if err != nil {
			t.Fatalf("SubmitPost failed: %v", err)
		}
		if next != (CategoryDetail{Category: "General"}) || gotCategory != "General" {
			t.Errorf("unexpected next screen %#v for category %q", next, gotCategory)
		}
	})

	t.Run("failure", func(t *testing.T) {
		forum := &mockForum{createPostFn: func(ctx context.Context, category, title, content string) (data.PostID, error) {
			return 0, service.ErrUnknownCategory
		}}
		next, err := New(forum, logger.Nop()).SubmitPost(context.Background(), CategoryDetail{Category: "Nope"}, "t", "c")
		if !errors.Is(err, service.ErrUnknownCategory) {
			t.Errorf("expected wrapped ErrUnknownCategory, got %v", err)
		}
		if next != (CategoryDetail{Category: "Nope"}) {
			t.Errorf("expected to stay on the same screen, got %#v", next)
		}
	})
}

func TestSubmitComment(t *testing.T) {
	var gotPost data.PostID
	forum := &mockForum{addCommentFn: func(ctx context.Context, postID data.PostID, content string) (data.CommentID, error) {
		gotPost = postID
		return 0, nil
	}}
	next, err := New(forum, logger.Nop()).SubmitComment(context.Background(), PostDetail{PostID: 7}, "Nice post")
	if err != nil {
		t.Fatalf("SubmitComment failed: %v", err)
	}
	if next != (PostDetail{PostID: 7}) || gotPost != 7 {
		t.Errorf("unexpected next screen %#v for post %d", next, gotPost)
	}
}

func TestScreenPath(t *testing.T) {
	cases := map[string]Screen{
		"/":                     CategoryList{},
		"/categories/General":   CategoryDetail{Category: "General"},
		"/categories/Off-topic": CategoryDetail{Category: "Off-topic"},
		"/posts/12":             PostDetail{PostID: 12},
	}
	for want, s := range cases {
		if got := s.Path(); got != want {
			t.Errorf("%#v: expected path %q, got %q", s, want, got)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(&mockForum{}, logger.Nop(), 2)
	alice, bob, carol := principal.New(), principal.New(), principal.New()

	first := r.For(alice)
	if r.For(alice) != first {
		t.Error("expected the same controller for the same principal")
	}
	r.For(bob)
	r.For(carol)

	if r.Len() != 2 {
		t.Errorf("expected registry to hold 2 controllers, got %d", r.Len())
	}
	if r.For(alice) == first {
		t.Error("expected the least recently used controller to be evicted")
	}
}
