package repository

import (
	"context"

	"github.com/news-api/internal/database"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/validation"
)

// ArticleRepository defines the interface for article data operations.
// Lookups return (nil, nil) when the row does not exist.
type ArticleRepository interface {
	List(ctx context.Context, q validation.ArticleQuery) ([]*models.Article, int, error)
	GetByID(ctx context.Context, id int) (*models.Article, error)
	Create(ctx context.Context, article *models.NewArticle) (*models.Article, error)
	IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error)
	Delete(ctx context.Context, id int) (bool, error)
	BatchInsert(ctx context.Context, articles []*models.Article) (int, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByArticle(ctx context.Context, articleID int, page validation.PageQuery) ([]*models.Comment, error)
	Create(ctx context.Context, articleID int, comment *models.NewComment) (*models.Comment, error)
	IncrementVotes(ctx context.Context, id, delta int) (*models.Comment, error)
	Delete(ctx context.Context, id int) (bool, error)
	BatchInsert(ctx context.Context, comments []*models.Comment) (int, error)
	Count(ctx context.Context) (int, error)
}

// TopicRepository defines the interface for topic data operations
type TopicRepository interface {
	List(ctx context.Context) ([]*models.Topic, error)
	Create(ctx context.Context, topic *models.Topic) (*models.Topic, error)
	BatchInsert(ctx context.Context, topics []*models.Topic) (int, error)
	Count(ctx context.Context) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	BatchInsert(ctx context.Context, users []*models.User) (int, error)
	Count(ctx context.Context) (int, error)
}

// ExistenceChecker reports whether a row with the given column value exists.
// A missing row is reported as an apperror not-found error.
type ExistenceChecker interface {
	Exists(ctx context.Context, kind models.EntityKind, column string, value interface{}) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Comment CommentRepository
	Topic   TopicRepository
	User    UserRepository
	Exists  ExistenceChecker
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
		Topic:   NewTopicRepo(db),
		User:    NewUserRepo(db),
		Exists:  NewExistenceChecker(db),
	}
}
