package service

import (
	"context"
	"encoding/json"
	"fmt"
	"go-forum-app/internal/cache"
	"go-forum-app/internal/data"
	"go-forum-app/internal/logger"
	"go-forum-app/internal/principal"
	"sync/atomic"
	"time"
)

const (
	categoriesInfoKey = "categories:info"

	// DefaultCacheTTL bounds how long category summaries are served from cache.
	DefaultCacheTTL = time.Minute
)

// ForumService implements Forum on top of the SQL repositories.
// Category summaries are cached and invalidated whenever a post is written.
// summaryGen counts invalidations; summaries computed across an invalidation
// are never left in the cache.
type ForumService struct {
	posts      PostRepository
	comments   CommentRepository
	categories CategoryRepository
	cache      cache.Store
	cacheTTL   time.Duration
	log        logger.Logger
	now        func() time.Time
	summaryGen atomic.Uint64
}

var _ Forum = (*ForumService)(nil)

// NewForumService creates a new ForumService. store may be nil to disable caching.
func NewForumService(posts PostRepository, comments CommentRepository, categories CategoryRepository, store cache.Store, ttl time.Duration, log logger.Logger) *ForumService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ForumService{
		posts:      posts,
		comments:   comments,
		categories: categories,
		cache:      store,
		cacheTTL:   ttl,
		log:        log,
		now:        time.Now,
	}
}

// CreatePost stores a new post authored by the caller and returns its id.
func (s *ForumService) CreatePost(ctx context.Context, category, title, content string) (data.PostID, error) {
	found, err := s.categories.FindByName(ctx, category)
	if err != nil {
		return 0, err
	}
	if found == nil {
		return 0, fmt.Errorf("create post in %q: %w", category, ErrUnknownCategory)
	}

	post := &data.Post{
		Title:     title,
		Content:   content,
		CreatedAt: s.now().UnixNano(),
		Author:    principal.FromContext(ctx).String(),
		Category:  category,
	}
	id, err := s.posts.CreatePost(ctx, post)
	if err != nil {
		return 0, err
	}
	s.invalidateCategoriesInfo(ctx)

	s.log.With(map[string]interface{}{"post_id": id, "category": category}).Debug("post created")
	return id, nil
}

// AddComment attaches a comment by the caller to an existing post.
func (s *ForumService) AddComment(ctx context.Context, postID data.PostID, content string) (data.CommentID, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, fmt.Errorf("comment on post %d: %w", postID, ErrUnknownPost)
	}

	comment := &data.Comment{
		Content:   content,
		CreatedAt: s.now().UnixNano(),
		Author:    principal.FromContext(ctx).String(),
		PostID:    postID,
	}
	id, err := s.comments.CreateComment(ctx, comment)
	if err != nil {
		return 0, err
	}

	s.log.With(map[string]interface{}{"comment_id": id, "post_id": postID}).Debug("comment added")
	return id, nil
}

// GetPost returns the post or nil when it does not exist.
func (s *ForumService) GetPost(ctx context.Context, postID data.PostID) (*data.Post, error) {
	return s.posts.GetPostByID(ctx, postID)
}

// GetPostsByCategory lists the posts of a category in creation order.
func (s *ForumService) GetPostsByCategory(ctx context.Context, category string) ([]data.Post, error) {
	return s.posts.GetPostsByCategory(ctx, category)
}

// GetCommentsByPost lists the comments of a post in creation order.
func (s *ForumService) GetCommentsByPost(ctx context.Context, postID data.PostID) ([]data.Comment, error) {
	return s.comments.GetCommentsByPost(ctx, postID)
}

// GetCategoriesInfo returns one summary per category in display order.
func (s *ForumService) GetCategoriesInfo(ctx context.Context) ([]data.CategoryInfo, error) {
	if infos, ok := s.cachedCategoriesInfo(ctx); ok {
		return infos, nil
	}
	gen := s.summaryGen.Load()

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.posts.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]data.CategoryInfo, 0, len(categories))
	for _, c := range categories {
		info := data.CategoryInfo{Category: c, PostCount: counts[c.Name]}
		if info.PostCount > 0 {
			if info.RecentPost, err = s.posts.GetLatestPost(ctx, c.Name); err != nil {
				return nil, err
			}
		}
		infos = append(infos, info)
	}

	s.storeCategoriesInfo(ctx, gen, infos)
	return infos, nil
}

// CreateSamplePosts seeds the forum with sample posts. Only the first call
// creates anything; later calls return an empty list.
func (s *ForumService) CreateSamplePosts(ctx context.Context) ([]data.PostID, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.Name] = true
	}

	author := principal.FromContext(ctx).String()
	createdAt := s.now().UnixNano()
	var posts []*data.Post
	for i, sample := range samplePosts {
		if !known[sample.Category] {
			continue
		}
		posts = append(posts, &data.Post{
			Title:   sample.Title,
			Content: sample.Content,
			// Distinct timestamps keep "most recent" well defined within a batch.
			CreatedAt: createdAt + int64(i),
			Author:    author,
			Category:  sample.Category,
		})
	}

	ids, err := s.posts.CreateSeededPosts(ctx, sampleSeedName, posts)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		s.invalidateCategoriesInfo(ctx)
		s.log.Info(fmt.Sprintf("Created %d sample posts", len(ids)))
	}
	return ids, nil
}

func (s *ForumService) cachedCategoriesInfo(ctx context.Context) ([]data.CategoryInfo, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, categoriesInfoKey)
	if err != nil {
		s.log.Error(err, "Failed to read category summaries from cache")
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	var infos []data.CategoryInfo
	if err := json.Unmarshal(raw, &infos); err != nil {
		s.log.Error(err, "Discarding malformed category summaries in cache")
		return nil, false
	}
	return infos, true
}

// storeCategoriesInfo caches infos computed at generation gen. If a post was
// written since, the entry is skipped, or removed again when the write raced
// with the Set.
func (s *ForumService) storeCategoriesInfo(ctx context.Context, gen uint64, infos []data.CategoryInfo) {
	if s.cache == nil || s.summaryGen.Load() != gen {
		return
	}
	raw, err := json.Marshal(infos)
	if err != nil {
		s.log.Error(err, "Failed to encode category summaries")
		return
	}
	if err := s.cache.Set(ctx, categoriesInfoKey, raw, s.cacheTTL); err != nil {
		s.log.Error(err, "Failed to cache category summaries")
		return
	}
	if s.summaryGen.Load() != gen {
		if err := s.cache.Delete(ctx, categoriesInfoKey); err != nil {
			s.log.Error(err, "Failed to drop stale category summaries")
		}
	}
}

// invalidateCategoriesInfo bumps the generation before deleting, so a
// concurrent store either sees the new generation or is deleted afterwards.
func (s *ForumService) invalidateCategoriesInfo(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.summaryGen.Add(1)
	if err := s.cache.Delete(ctx, categoriesInfoKey); err != nil {
		s.log.Error(err, "Failed to invalidate category summaries")
	}
}
