package models

import (
	"time"
)

// DefaultArticleImgURL is stored when an article is created without an image.
const DefaultArticleImgURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

// Article represents an article together with its derived comment count.
type Article struct {
	ArticleID     int       `json:"article_id" db:"article_id"`
	Author        string    `json:"author" db:"author"`
	Title         string    `json:"title" db:"title"`
	Body          string    `json:"body,omitempty" db:"body"`
	Topic         string    `json:"topic" db:"topic"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Votes         int       `json:"votes" db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count" db:"comment_count"`
}

// ArticlePage is one page of an article listing plus the size of the
// unpaginated result.
type ArticlePage struct {
	Articles   []*Article `json:"articles"`
	TotalCount int        `json:"total_count"`
}

// NewArticle is the request body for creating an article.
type NewArticle struct {
	Author        string `json:"author" validate:"notblank"`
	Title         string `json:"title" validate:"notblank"`
	Body          string `json:"body" validate:"notblank"`
	Topic         string `json:"topic" validate:"notblank"`
	ArticleImgURL string `json:"article_img_url" validate:"omitempty,url"`
}

// VoteUpdate is the request body for adjusting a vote count.
type VoteUpdate struct {
	IncVotes *int `json:"inc_votes" validate:"required"`
}
