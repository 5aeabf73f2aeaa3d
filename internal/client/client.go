package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"go-forum-app/internal/data"
	"go-forum-app/internal/principal"
	"go-forum-app/internal/service"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Error is returned when the API answers with a non-2xx status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("forum API error (status %d): %s", e.Status, e.Message)
}

// Client implements service.Forum against the JSON API of a remote forum server.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ service.Forum = (*Client)(nil)

// New creates a Client for the API rooted at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		client:  &http.Client{Timeout: timeout},
	}
}

type createPostRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

type addCommentRequest struct {
	Content string `json:"content"`
}

type idResponse struct {
	ID uint64 `json:"id"`
}

type idsResponse struct {
	IDs []data.PostID `json:"ids"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreatePost creates a post in category and returns its server-assigned id.
func (c *Client) CreatePost(ctx context.Context, category, title, content string) (data.PostID, error) {
	var resp idResponse
	body := createPostRequest{Category: category, Title: title, Content: content}
	if err := c.do(ctx, http.MethodPost, "/posts", body, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// AddComment attaches a comment to the post and returns the new comment id.
func (c *Client) AddComment(ctx context.Context, postID data.PostID, content string) (data.CommentID, error) {
	var resp idResponse
	if err := c.do(ctx, http.MethodPost, postPath(postID)+"/comments", addCommentRequest{Content: content}, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// GetPost decodes a JSON null as an absent post.
func (c *Client) GetPost(ctx context.Context, postID data.PostID) (*data.Post, error) {
	var post *data.Post
	if err := c.do(ctx, http.MethodGet, postPath(postID), nil, &post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPostsByCategory lists the posts of a category in creation order.
func (c *Client) GetPostsByCategory(ctx context.Context, category string) ([]data.Post, error) {
	posts := []data.Post{}
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(category)+"/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetCommentsByPost lists the comments of a post in creation order.
func (c *Client) GetCommentsByPost(ctx context.Context, postID data.PostID) ([]data.Comment, error) {
	comments := []data.Comment{}
	if err := c.do(ctx, http.MethodGet, postPath(postID)+"/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCategoriesInfo returns one summary per category.
func (c *Client) GetCategoriesInfo(ctx context.Context) ([]data.CategoryInfo, error) {
	infos := []data.CategoryInfo{}
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// CreateSamplePosts seeds the remote forum; repeated calls return an empty list.
func (c *Client) CreateSamplePosts(ctx context.Context) ([]data.PostID, error) {
	var resp idsResponse
	if err := c.do(ctx, http.MethodPost, "/samples", nil, &resp); err != nil {
		return nil, err
	}
	if resp.IDs == nil {
		resp.IDs = []data.PostID{}
	}
	return resp.IDs, nil
}

func postPath(id data.PostID) string {
	return "/posts/" + strconv.FormatUint(id, 10)
}

// do sends one API request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("forum client marshal: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("forum client request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(principal.Header, principal.FromContext(ctx).String())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("forum client http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("forum client read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		if json.Unmarshal(respBody, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(respBody))
		}
		return &Error{Status: resp.StatusCode, Message: e.Error}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("forum client unmarshal: %w", err)
	}
	return nil
}
