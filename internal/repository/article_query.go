package repository

import (
	"fmt"
	"strings"

	"github.com/news-api/internal/validation"
)

// sortExpressions maps each allow-listed sort column to its SQL expression.
var sortExpressions = map[string]string{
	validation.SortByAuthor.String():        "a.author",
	validation.SortByTitle.String():         "a.title",
	validation.SortByArticleID.String():     "a.article_id",
	validation.SortByTopic.String():         "a.topic",
	validation.SortByCreatedAt.String():     "a.created_at",
	validation.SortByVotes.String():         "a.votes",
	validation.SortByArticleImgURL.String(): "a.article_img_url",
	validation.SortByCommentCount.String():  "comment_count",
}

// BuildArticleListQuery composes the article listing query and its bind
// parameters. Each row carries the article's comment count and, through a
// window over the grouped rows, the number of articles matching the filter
// before LIMIT/OFFSET.
func BuildArticleListQuery(q validation.ArticleQuery) (string, []interface{}) {
	var sb strings.Builder
	args := make([]interface{}, 0, 3)

	sb.WriteString(`SELECT a.author, a.title, a.article_id, a.topic, a.created_at, a.votes, a.article_img_url,
	COUNT(c.comment_id)::INT AS comment_count,
	COUNT(*) OVER()::INT AS total_count
FROM articles a
LEFT JOIN comments c ON c.article_id = a.article_id`)

	if q.Topic != "" {
		args = append(args, q.Topic)
		fmt.Fprintf(&sb, "\nWHERE a.topic = $%d", len(args))
	}

	sb.WriteString("\nGROUP BY a.article_id")

	order := validation.OrderDesc
	if q.Order == validation.OrderAsc {
		order = validation.OrderAsc
	}
	expr := sortExpressions[q.SortBy.String()]
	fmt.Fprintf(&sb, "\nORDER BY %s %s", expr, order)
	if q.SortBy != validation.SortByArticleID {
		fmt.Fprintf(&sb, ", a.article_id %s", order)
	}

	limit := q.Limit
	if limit < 1 {
		limit = validation.DefaultLimit
	}
	args = append(args, limit, validation.SafeOffset(q.PageIndex, limit))
	fmt.Fprintf(&sb, "\nLIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return sb.String(), args
}

// BuildArticleCountQuery counts the articles matching the topic filter of q.
func BuildArticleCountQuery(q validation.ArticleQuery) (string, []interface{}) {
	if q.Topic == "" {
		return "SELECT COUNT(*) FROM articles", nil
	}
	return "SELECT COUNT(*) FROM articles WHERE topic = $1", []interface{}{q.Topic}
}
