package handler

import (
	"bytes"
	"errors"
	"go-forum-app/internal/controller"
	"go-forum-app/internal/logger"
	"go-forum-app/internal/middleware"
	"go-forum-app/internal/principal"
	"go-forum-app/internal/session"
	"go-forum-app/internal/view"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// UIHandler renders the browser screens produced by the caller's controller.
type UIHandler struct {
	controllers *controller.Registry
	sessions    session.Manager
	view        *view.View
	log         logger.Logger
}

// NewUIHandler creates a new UIHandler with the given dependencies.
func NewUIHandler(controllers *controller.Registry, sm session.Manager, v *view.View, log logger.Logger) *UIHandler {
	return &UIHandler{
		controllers: controllers,
		sessions:    sm,
		view:        v,
		log:         log,
	}
}

// homeHandler shows the category list, which opens the first category.
func (h *UIHandler) homeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.navigate(w, r, controller.CategoryList{})
}

func (h *UIHandler) categoryHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.navigate(w, r, controller.CategoryDetail{Category: chi.URLParam(r, "name")})
}

func (h *UIHandler) postHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Post not found", Code: http.StatusNotFound}
	}
	return h.navigate(w, r, controller.PostDetail{PostID: id})
}

// createPostHandler handles the new-post form. Failures are shown as an alert
// on the same screen.
func (h *UIHandler) createPostHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	screen := controller.CategoryDetail{Category: chi.URLParam(r, "name")}
	next, err := h.controllerFor(r).SubmitPost(r.Context(), screen, r.FormValue("title"), r.FormValue("content"))
	if err != nil {
		h.log.Error(err, "Failed to submit post")
		h.sessions.Put(r.Context(), session.FlashKey, "Could not create the post: "+err.Error())
	}
	http.Redirect(w, r, next.Path(), http.StatusSeeOther)
	return nil
}

func (h *UIHandler) addCommentHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Post not found", Code: http.StatusNotFound}
	}
	next, err := h.controllerFor(r).SubmitComment(r.Context(), controller.PostDetail{PostID: id}, r.FormValue("content"))
	if err != nil {
		h.log.Error(err, "Failed to submit comment")
		h.sessions.Put(r.Context(), session.FlashKey, "Could not add the comment: "+err.Error())
	}
	http.Redirect(w, r, next.Path(), http.StatusSeeOther)
	return nil
}

func (h *UIHandler) controllerFor(r *http.Request) *controller.Controller {
	return h.controllers.For(principal.FromContext(r.Context()))
}

// navigate runs the controller for screen and renders the resulting view.
func (h *UIHandler) navigate(w http.ResponseWriter, r *http.Request, screen controller.Screen) *middleware.AppError {
	v, err := h.controllerFor(r).Navigate(r.Context(), screen)
	if errors.Is(err, controller.ErrStale) {
		// A newer load from the same caller won; send the browser back to the screen it asked for.
		http.Redirect(w, r, screen.Path(), http.StatusSeeOther)
		return nil
	}
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load page", Code: http.StatusInternalServerError}
	}

	data := map[string]interface{}{
		"Flash":          h.sessions.PopString(r.Context(), session.FlashKey),
		"ActiveCategory": "",
	}
	page := "home.html"
	status := http.StatusOK
	if v != nil {
		data["Categories"] = v.Categories
		data["Notice"] = v.Notice
		switch s := v.Screen.(type) {
		case controller.CategoryDetail:
			page = "category.html"
			data["Category"] = s.Category
			data["ActiveCategory"] = s.Category
			data["Posts"] = v.Posts
		case controller.PostDetail:
			page = "post.html"
			data["Post"] = v.Post
			data["Comments"] = v.Comments
			if v.Post != nil {
				data["ActiveCategory"] = v.Post.Category
			}
			if v.NotFound {
				status = http.StatusNotFound
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := h.view.Render(buf, r, page, data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render page", Code: http.StatusInternalServerError}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
	return nil
}
