//go:build unit

package client

import (
	"context"
	"encoding/json"
	"errors"
	"go-forum-app/internal/data"
	"go-forum-app/internal/principal"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// recordedRequest captures what the fake API received.
type recordedRequest struct {
	method    string
	path      string
	body      string
	principal string
}

func newTestServer(t *testing.T, status int, response string) (*Client, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.EscapedPath()
		rec.body = string(body)
		rec.principal = r.Header.Get(principal.Header)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, response)
	}))
	t.Cleanup(server.Close)
	return New(server.URL+"/", time.Second), rec
}

func TestClient_CreatePost(t *testing.T) {
	c, rec := newTestServer(t, http.StatusCreated, `{"id":0}`)
	caller := principal.New()
	ctx := principal.NewContext(context.Background(), caller)

	id, err := c.CreatePost(ctx, "General", "Hello", "World")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if id != 0 {
		t.Errorf("expected id 0, got %d", id)
	}
	if rec.method != http.MethodPost || rec.path != "/api/posts" {
		t.Errorf("unexpected request %s %s", rec.method, rec.path)
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(rec.body), &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if body["category"] != "General" || body["title"] != "Hello" || body["content"] != "World" {
		t.Errorf("unexpected request body %v", body)
	}
	if rec.principal != caller.String() {
		t.Errorf("expected principal header '%s', got '%s'", caller, rec.principal)
	}
}

func TestClient_GetPostAbsent(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, "null")

	post, err := c.GetPost(context.Background(), 12345)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if post != nil {
		t.Errorf("expected absent post, got %+v", post)
	}
	if rec.path != "/api/posts/12345" {
		t.Errorf("unexpected path %s", rec.path)
	}
	if rec.principal != principal.Anonymous.String() {
		t.Errorf("expected anonymous principal header, got '%s'", rec.principal)
	}
}

func TestClient_GetPostsByCategoryEscapesName(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `[{"id":1,"title":"t","content":"c","createdAt":5,"author":"a","category":"Off topic"}]`)

	posts, err := c.GetPostsByCategory(context.Background(), "Off topic")
	if err != nil {
		t.Fatalf("GetPostsByCategory failed: %v", err)
	}
	if rec.path != "/api/categories/Off%20topic/posts" {
		t.Errorf("unexpected path %s", rec.path)
	}
	if len(posts) != 1 || posts[0].CreatedAt != 5 {
		t.Errorf("unexpected posts %+v", posts)
	}
}

func TestClient_GetCategoriesInfo(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `[{"category":{"name":"General","icon":"📣","description":"General chat"},"postCount":0,"recentPost":null}]`)

	infos, err := c.GetCategoriesInfo(context.Background())
	if err != nil {
		t.Fatalf("GetCategoriesInfo failed: %v", err)
	}
	want := data.Category{Name: "General", Icon: "📣", Description: "General chat"}
	if len(infos) != 1 || infos[0].Category != want || infos[0].RecentPost != nil {
		t.Errorf("unexpected summaries %+v", infos)
	}
}

func TestClient_CreateSamplePostsEmpty(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{"ids":[]}`)

	ids, err := c.CreateSamplePosts(context.Background())
	if err != nil {
		t.Fatalf("CreateSamplePosts failed: %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("expected an empty, non-nil list, got %#v", ids)
	}
}

func TestClient_ErrorResponse(t *testing.T) {
	c, _ := newTestServer(t, http.StatusUnprocessableEntity, `{"error":"unknown category"}`)

	_, err := c.AddComment(context.Background(), 3, "hi")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.Message != "unknown category" {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestClient_Unreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", 100*time.Millisecond)
	if _, err := c.GetCommentsByPost(context.Background(), 0); err == nil {
		t.Error("expected an error for an unreachable server")
	}
}
