package models

// ArticleSummary is an article as returned by listings, without its body
type ArticleSummary struct {
	ArticleID     int       `json:"article_id" db:"article_id"`
	Title         string    `json:"title" db:"title"`
	Topic         string    `json:"topic" db:"topic"`
	Author        string    `json:"author" db:"author"`
	CreatedAt     Timestamp `json:"created_at" db:"created_at"`
	Votes         int       `json:"votes" db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count" db:"-"` // Aggregated, never stored
}

// Article is a single article including its body
type Article struct {
	ArticleSummary
	Body string `json:"body" db:"body"`
}

// SortFields lists the article columns a listing can be ordered by
var SortFields = []string{
	"article_id",
	"title",
	"topic",
	"author",
	"created_at",
	"votes",
	"comment_count",
}
