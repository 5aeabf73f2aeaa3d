package handler

import (
	"encoding/xml"
	"fmt"
	"go-forum-app/internal/controller"
	"go-forum-app/internal/service"
	"net/http"
	"strings"
	"time"
)

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	forum   service.Forum
	baseURL string
}

// NewSeoHandler creates a new SeoHandler. baseURL is the public root of the site.
func NewSeoHandler(forum service.Forum, baseURL string) *SeoHandler {
	return &SeoHandler{forum: forum, baseURL: strings.TrimRight(baseURL, "/")}
}

// robotsHandler serves a static robots.txt file.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "Disallow: /api/")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Sitemap: %s/sitemap.xml\n", h.baseURL)
}

const sitemapDateFormat = "2006-01-02"

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler lists every category page and post page.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	infos, err := h.forum.GetCategoriesInfo(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve categories for sitemap", http.StatusInternalServerError)
		return
	}

	sitemap := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, info := range infos {
		categoryURL := sitemapURL{Loc: h.baseURL + controller.CategoryDetail{Category: info.Category.Name}.Path()}
		if info.RecentPost != nil {
			categoryURL.LastMod = lastMod(info.RecentPost.CreatedAt)
		}
		sitemap.URLs = append(sitemap.URLs, categoryURL)

		if info.PostCount == 0 {
			continue
		}
		posts, err := h.forum.GetPostsByCategory(r.Context(), info.Category.Name)
		if err != nil {
			http.Error(w, "Failed to retrieve posts for sitemap", http.StatusInternalServerError)
			return
		}
		for _, post := range posts {
			sitemap.URLs = append(sitemap.URLs, sitemapURL{
				Loc:     h.baseURL + controller.PostDetail{PostID: post.ID}.Path(),
				LastMod: lastMod(post.CreatedAt),
			})
		}
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		http.Error(w, "Failed to generate sitemap XML", http.StatusInternalServerError)
		return
	}
}

func lastMod(nanos int64) string {
	return time.Unix(0, nanos).UTC().Format(sitemapDateFormat)
}
