package service

import (
	"context"

	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/news-api/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article operations
type ArticleService interface {
	ListArticles(ctx context.Context, raw map[string]string) (*models.ArticlePage, error)
	GetArticle(ctx context.Context, id int) (*models.Article, error)
	CreateArticle(ctx context.Context, req *models.NewArticle) (*models.Article, error)
	UpdateVotes(ctx context.Context, id int, update *models.VoteUpdate) (*models.Article, error)
	DeleteArticle(ctx context.Context, id int) error
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListForArticle(ctx context.Context, articleID int, raw map[string]string) ([]*models.Comment, error)
	AddComment(ctx context.Context, articleID int, req *models.NewComment) (*models.Comment, error)
	UpdateVotes(ctx context.Context, id int, update *models.VoteUpdate) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

// TopicService defines the interface for topic operations
type TopicService interface {
	ListTopics(ctx context.Context) ([]*models.Topic, error)
	CreateTopic(ctx context.Context, req *models.Topic) (*models.Topic, error)
}

// UserService defines the interface for user operations
type UserService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
}

// StatsService reports table sizes
type StatsService interface {
	Counts(ctx context.Context) (*models.TableCounts, error)
}

// Services holds all service interfaces
type Services struct {
	Article ArticleService
	Comment CommentService
	Topic   TopicService
	User    UserService
	Stats   StatsService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	v := validation.NewValidator()

	return &Services{
		Article: newArticleService(repos, v, log),
		Comment: newCommentService(repos, v, log),
		Topic:   newTopicService(repos.Topic, v, log),
		User:    newUserService(repos.User),
		Stats:   newStatsService(repos),
	}
}
