package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/news-api/internal/database"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/validation"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleDetailQuery = `
	SELECT a.author, a.title, a.article_id, a.body, a.topic, a.created_at, a.votes, a.article_img_url,
		COUNT(c.comment_id)::INT AS comment_count
	FROM articles a
	LEFT JOIN comments c ON c.article_id = a.article_id
	WHERE a.article_id = $1
	GROUP BY a.article_id
`

// List returns one page of articles and the number of matching articles
// across all pages.
func (r *articleRepo) List(ctx context.Context, q validation.ArticleQuery) ([]*models.Article, int, error) {
	query, args := BuildArticleListQuery(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	total := 0
	for rows.Next() {
		var article models.Article
		err := rows.Scan(
			&article.Author, &article.Title, &article.ArticleID, &article.Topic,
			&article.CreatedAt, &article.Votes, &article.ArticleImgURL,
			&article.CommentCount, &total,
		)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, &article)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// Past the last page the window has no rows to report the total on.
	if len(articles) == 0 && q.Offset() > 0 {
		countQuery, countArgs := BuildArticleCountQuery(q)
		if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	return articles, total, nil
}

// GetByID retrieves an article with its comment count
func (r *articleRepo) GetByID(ctx context.Context, id int) (*models.Article, error) {
	var article models.Article
	err := r.db.QueryRowContext(ctx, articleDetailQuery, id).Scan(
		&article.Author, &article.Title, &article.ArticleID, &article.Body, &article.Topic,
		&article.CreatedAt, &article.Votes, &article.ArticleImgURL, &article.CommentCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Create inserts a new article. A fresh article has no comments.
func (r *articleRepo) Create(ctx context.Context, article *models.NewArticle) (*models.Article, error) {
	imgURL := article.ArticleImgURL
	if imgURL == "" {
		imgURL = models.DefaultArticleImgURL
	}

	query := `
		INSERT INTO articles (author, title, body, topic, article_img_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING article_id, author, title, body, topic, created_at, votes, article_img_url
	`
	var created models.Article
	err := r.db.QueryRowContext(ctx, query,
		article.Author, article.Title, article.Body, article.Topic, imgURL,
	).Scan(
		&created.ArticleID, &created.Author, &created.Title, &created.Body, &created.Topic,
		&created.CreatedAt, &created.Votes, &created.ArticleImgURL,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// IncrementVotes atomically adds delta to the article's votes and returns the
// updated row with its comment count.
func (r *articleRepo) IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error) {
	query := `
		WITH updated AS (
			UPDATE articles SET votes = votes + $1
			WHERE article_id = $2
			RETURNING article_id, author, title, body, topic, created_at, votes, article_img_url
		)
		SELECT u.article_id, u.author, u.title, u.body, u.topic, u.created_at, u.votes, u.article_img_url,
			COUNT(c.comment_id)::INT AS comment_count
		FROM updated u
		LEFT JOIN comments c ON c.article_id = u.article_id
		GROUP BY u.article_id, u.author, u.title, u.body, u.topic, u.created_at, u.votes, u.article_img_url
	`
	var article models.Article
	err := r.db.QueryRowContext(ctx, query, delta, id).Scan(
		&article.ArticleID, &article.Author, &article.Title, &article.Body, &article.Topic,
		&article.CreatedAt, &article.Votes, &article.ArticleImgURL, &article.CommentCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Delete removes an article and its comments in one transaction. It reports
// whether the article existed.
func (r *articleRepo) Delete(ctx context.Context, id int) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE article_id = $1", id); err != nil {
		return false, err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM articles WHERE article_id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// BatchInsert inserts multiple articles using PostgreSQL COPY. Article IDs
// are copied as given.
func (r *articleRepo) BatchInsert(ctx context.Context, articles []*models.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("articles",
		"article_id", "title", "topic", "author", "body", "created_at", "votes", "article_img_url",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, article := range articles {
		imgURL := article.ArticleImgURL
		if imgURL == "" {
			imgURL = models.DefaultArticleImgURL
		}
		_, err := stmt.ExecContext(ctx,
			article.ArticleID, article.Title, article.Topic, article.Author, article.Body,
			article.CreatedAt, article.Votes, imgURL,
		)
		if err != nil {
			return 0, err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}
	if err := stmt.Close(); err != nil {
		return 0, err
	}

	if err := resetSequence(ctx, tx, "articles", "article_id"); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(articles), nil
}

// resetSequence moves a serial column's sequence past rows copied in with
// explicit ids.
func resetSequence(ctx context.Context, tx *sql.Tx, table, column string) error {
	_, err := tx.ExecContext(ctx, fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%[1]s', '%[2]s'), COALESCE((SELECT MAX(%[2]s) FROM %[1]s), 1))",
		table, column,
	))
	return err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}
