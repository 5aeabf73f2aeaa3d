package handler

import (
	"go-forum-app/internal/middleware"
	"go-forum-app/internal/session"
	"go-forum-app/web"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new chi router.
func NewRouter(
	apiHandler *APIHandler,
	uiHandler *UIHandler,
	seoHandler *SeoHandler,
	requestLogger func(http.Handler) http.Handler,
	errorMiddleware func(middleware.AppHandler) http.Handler,
	apiErrorMiddleware func(middleware.AppHandler) http.Handler,
	sm session.Manager,
) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)

	// Operational routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/robots.txt", seoHandler.robotsHandler)
	r.Get("/sitemap.xml", seoHandler.sitemapHandler)

	// fs.Sub only fails for invalid paths.
	static, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// Routes that know the caller
	r.Group(func(r chi.Router) {
		r.Use(sm.LoadAndSave)
		r.Use(middleware.Identity(sm))

		r.Route("/api", func(r chi.Router) {
			r.Method(http.MethodGet, "/categories", apiErrorMiddleware(apiHandler.getCategoriesInfo))
			r.Method(http.MethodGet, "/categories/{name}/posts", apiErrorMiddleware(apiHandler.getPostsByCategory))
			r.Method(http.MethodPost, "/posts", apiErrorMiddleware(apiHandler.createPost))
			r.Method(http.MethodGet, "/posts/{id}", apiErrorMiddleware(apiHandler.getPost))
			r.Method(http.MethodGet, "/posts/{id}/comments", apiErrorMiddleware(apiHandler.getCommentsByPost))
			r.Method(http.MethodPost, "/posts/{id}/comments", apiErrorMiddleware(apiHandler.addComment))
			r.Method(http.MethodPost, "/samples", apiErrorMiddleware(apiHandler.createSamplePosts))
		})

		r.Method(http.MethodGet, "/", errorMiddleware(uiHandler.homeHandler))
		r.Method(http.MethodGet, "/categories/{name}", errorMiddleware(uiHandler.categoryHandler))
		r.Method(http.MethodPost, "/categories/{name}/posts", errorMiddleware(uiHandler.createPostHandler))
		r.Method(http.MethodGet, "/posts/{id}", errorMiddleware(uiHandler.postHandler))
		r.Method(http.MethodPost, "/posts/{id}/comments", errorMiddleware(uiHandler.addCommentHandler))
	})

	return r
}
