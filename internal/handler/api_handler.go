package handler

import (
	"encoding/json"
	"errors"
	"go-forum-app/internal/data"
	"go-forum-app/internal/middleware"
	"go-forum-app/internal/service"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// APIHandler exposes the forum contract as JSON endpoints.
type APIHandler struct {
	forum service.Forum
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(forum service.Forum) *APIHandler {
	return &APIHandler{forum: forum}
}

type createPostRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

type addCommentRequest struct {
	Content string `json:"content"`
}

func (h *APIHandler) getCategoriesInfo(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	infos, err := h.forum.GetCategoriesInfo(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load categories", Code: http.StatusInternalServerError}
	}
	middleware.WriteJSON(w, http.StatusOK, infos)
	return nil
}

func (h *APIHandler) getPostsByCategory(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	posts, err := h.forum.GetPostsByCategory(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load posts", Code: http.StatusInternalServerError}
	}
	middleware.WriteJSON(w, http.StatusOK, posts)
	return nil
}

func (h *APIHandler) createPost(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &middleware.AppError{Error: err, Message: "Malformed request body", Code: http.StatusBadRequest}
	}
	id, err := h.forum.CreatePost(r.Context(), req.Category, req.Title, req.Content)
	if err != nil {
		return forumFailure(err, "Failed to create post")
	}
	middleware.WriteJSON(w, http.StatusCreated, map[string]data.PostID{"id": id})
	return nil
}

// getPost answers with a JSON null for an absent post.
func (h *APIHandler) getPost(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := postIDParam(r)
	if appErr != nil {
		return appErr
	}
	post, err := h.forum.GetPost(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load post", Code: http.StatusInternalServerError}
	}
	middleware.WriteJSON(w, http.StatusOK, post)
	return nil
}

func (h *APIHandler) getCommentsByPost(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := postIDParam(r)
	if appErr != nil {
		return appErr
	}
	comments, err := h.forum.GetCommentsByPost(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load comments", Code: http.StatusInternalServerError}
	}
	middleware.WriteJSON(w, http.StatusOK, comments)
	return nil
}

func (h *APIHandler) addComment(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := postIDParam(r)
	if appErr != nil {
		return appErr
	}
	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &middleware.AppError{Error: err, Message: "Malformed request body", Code: http.StatusBadRequest}
	}
	commentID, err := h.forum.AddComment(r.Context(), id, req.Content)
	if err != nil {
		return forumFailure(err, "Failed to add comment")
	}
	middleware.WriteJSON(w, http.StatusCreated, map[string]data.CommentID{"id": commentID})
	return nil
}

func (h *APIHandler) createSamplePosts(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	ids, err := h.forum.CreateSamplePosts(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to create sample posts", Code: http.StatusInternalServerError}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string][]data.PostID{"ids": ids})
	return nil
}

func postIDParam(r *http.Request) (data.PostID, *middleware.AppError) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, &middleware.AppError{Error: err, Message: "Invalid post id", Code: http.StatusBadRequest}
	}
	return id, nil
}

// forumFailure maps references to unknown entities to 422 and everything else to 500.
func forumFailure(err error, message string) *middleware.AppError {
	if errors.Is(err, service.ErrUnknownCategory) || errors.Is(err, service.ErrUnknownPost) {
		return &middleware.AppError{Error: err, Message: err.Error(), Code: http.StatusUnprocessableEntity}
	}
	return &middleware.AppError{Error: err, Message: message, Code: http.StatusInternalServerError}
}
