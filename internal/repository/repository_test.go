package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/database"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/validation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return database.Wrap(sqlDB, zerolog.Nop()), mock
}

var listColumns = []string{
	"author", "title", "article_id", "topic", "created_at", "votes", "article_img_url", "comment_count", "total_count",
}

func TestArticleRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)
	created := time.Date(2020, 7, 9, 20, 11, 0, 0, time.UTC)

	q, err := validation.ValidateArticleQuery(map[string]string{"topic": "mitch", "limit": "2"})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.topic = $1")).
		WithArgs("mitch", 2, 0).
		WillReturnRows(sqlmock.NewRows(listColumns).
			AddRow("butter_bridge", "Living in the shadow of a great man", 1, "mitch", created, 100, models.DefaultArticleImgURL, 11, 12).
			AddRow("icellusedkars", "Sony Vaio; or, The Laptop", 2, "mitch", created, 0, models.DefaultArticleImgURL, 0, 12))

	articles, total, err := repo.List(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, articles, 2)
	assert.Equal(t, 11, articles[0].CommentCount)
	assert.Equal(t, 0, articles[1].CommentCount)
	assert.Empty(t, articles[0].Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_List_EmptyResult(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	q, _ := validation.ValidateArticleQuery(map[string]string{"topic": "paper"})
	mock.ExpectQuery(regexp.QuoteMeta("FROM articles a")).
		WithArgs("paper", 10, 0).
		WillReturnRows(sqlmock.NewRows(listColumns))

	articles, total, err := repo.List(context.Background(), q)
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_List_PastLastPageStillCounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	q, _ := validation.ValidateArticleQuery(map[string]string{"limit": "10", "p": "5"})
	mock.ExpectQuery(regexp.QuoteMeta("FROM articles a")).
		WithArgs(10, 40).
		WillReturnRows(sqlmock.NewRows(listColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))

	articles, total, err := repo.List(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, articles)
	assert.Equal(t, 13, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)
	cols := []string{"author", "title", "article_id", "body", "topic", "created_at", "votes", "article_img_url", "comment_count"}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.article_id = $1")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("icellusedkars", "Eight pug gifs", 3, "some gifs", "mitch", time.Now(), 0, models.DefaultArticleImgURL, 2))

	article, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Equal(t, 2, article.CommentCount)
	assert.Equal(t, "some gifs", article.Body)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.article_id = $1")).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	article, err = repo.GetByID(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, article)
}

func TestArticleRepo_IncrementVotes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)
	cols := []string{"article_id", "author", "title", "body", "topic", "created_at", "votes", "article_img_url", "comment_count"}

	mock.ExpectQuery(regexp.QuoteMeta("SET votes = votes + $1")).
		WithArgs(-100, 1).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "butter_bridge", "t", "b", "mitch", time.Now(), 0, models.DefaultArticleImgURL, 11))

	article, err := repo.IncrementVotes(context.Background(), 1, -100)
	require.NoError(t, err)
	assert.Equal(t, 0, article.Votes)
	assert.Equal(t, 11, article.CommentCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_IncrementVotes_CountsComments(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)
	cols := []string{"article_id", "author", "title", "body", "topic", "created_at", "votes", "article_img_url", "comment_count"}

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN comments c ON c.article_id = u.article_id")).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "butter_bridge", "t", "b", "mitch", time.Now(), 101, "x", 11))

	article, err := repo.IncrementVotes(context.Background(), 1, 1)
	require.NoError(t, err)

	encoded, err := json.Marshal(article)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"comment_count":11`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_IncrementVotes_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SET votes = votes + $1")).
		WithArgs(1, 999).
		WillReturnError(sql.ErrNoRows)

	article, err := repo.IncrementVotes(context.Background(), 999, 1)
	assert.NoError(t, err)
	assert.Nil(t, article)
}

func TestArticleRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE article_id = $1")).
		WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 11))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE article_id = $1")).
		WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_Delete_MissingRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments")).
		WithArgs(404).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles")).
		WithArgs(404).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	deleted, err := repo.Delete(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepo_ListByArticle(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepo(db)
	cols := []string{"comment_id", "body", "article_id", "author", "votes", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(1, 5, 5).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(5, "I hate streaming noses", 1, "icellusedkars", 0, time.Now()))

	comments, err := repo.ListByArticle(context.Background(), 1, validation.PageQuery{Limit: 5, PageIndex: 1})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, 5, comments[0].CommentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE comment_id = $1")).
		WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE comment_id = $1")).
		WithArgs(9999).WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), 9999)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("lurker").
		WillReturnRows(sqlmock.NewRows([]string{"username", "name", "avatar_url"}).AddRow("lurker", "do_nothing", nil))

	user, err := repo.GetByUsername(context.Background(), "lurker")
	require.NoError(t, err)
	assert.Equal(t, "do_nothing", user.Name)
	assert.Empty(t, user.AvatarURL)
}

func TestExistenceChecker(t *testing.T) {
	db, mock := newMockDB(t)
	checker := NewExistenceChecker(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM topics WHERE slug = $1)")).
		WithArgs("mitch").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	assert.NoError(t, checker.Exists(ctx, models.EntityTopic, "slug", "mitch"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM topics WHERE slug = $1)")).
		WithArgs("bananas").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	assert.True(t, apperror.IsNotFound(checker.Exists(ctx, models.EntityTopic, "slug", "bananas")))

	mock.ExpectQuery(regexp.QuoteMeta("FROM articles WHERE article_id = $1")).
		WithArgs("banana").
		WillReturnError(&pq.Error{Code: "22P02"})
	assert.True(t, apperror.IsBadRequest(checker.Exists(ctx, models.EntityArticle, "article_id", "banana")))

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WillReturnError(errors.New("connection refused"))
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(checker.Exists(ctx, models.EntityUser, "username", "x")))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsQuery_RejectsUnlistedColumns(t *testing.T) {
	_, err := ExistsQuery(models.EntityArticle, "title; DROP TABLE articles")
	assert.Error(t, err)

	_, err = ExistsQuery(models.EntityKind("sessions"), "id")
	assert.Error(t, err)

	query, err := ExistsQuery(models.EntityComment, "comment_id")
	require.NoError(t, err)
	assert.Equal(t, "SELECT EXISTS(SELECT 1 FROM comments WHERE comment_id = $1)", query)
}
