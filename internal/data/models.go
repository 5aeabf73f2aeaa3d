package data

// PostID identifies a post. Ids are assigned by the backend starting at 0.
type PostID = uint64

// CommentID identifies a comment. Ids are global across posts.
type CommentID = uint64

// Category is a forum section. Name is the unique identifier.
type Category struct {
	Name        string `db:"name" json:"name"`
	Icon        string `db:"icon" json:"icon"`
	Description string `db:"description" json:"description"`
	SortOrder   int    `db:"sort_order" json:"-"`
}

// Post is a single forum post. CreatedAt is nanoseconds since the Unix epoch.
type Post struct {
	ID        PostID `db:"id" json:"id"`
	Title     string `db:"title" json:"title"`
	Content   string `db:"content" json:"content"`
	CreatedAt int64  `db:"created_at" json:"createdAt"`
	Author    string `db:"author" json:"author"`
	Category  string `db:"category" json:"category"`
}

// Comment is attached to exactly one post.
type Comment struct {
	ID        CommentID `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt int64     `db:"created_at" json:"createdAt"`
	Author    string    `db:"author" json:"author"`
	PostID    PostID    `db:"post_id" json:"postId"`
}

// CategoryInfo is a read-only projection of a category and its post statistics.
// RecentPost is nil when the category has no posts.
type CategoryInfo struct {
	Category   Category `json:"category"`
	PostCount  uint64   `json:"postCount"`
	RecentPost *Post    `json:"recentPost"`
}

// CategoryStats is the aggregated post data for one category.
type CategoryStats struct {
	Category  string `db:"category"`
	PostCount uint64 `db:"post_count"`
}
