package mocks

import (
	"context"
	"fmt"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/service"
)

// Verify interface compliance
var (
	_ service.ArticleService = (*MockArticleService)(nil)
	_ service.CommentService = (*MockCommentService)(nil)
	_ service.TopicService   = (*MockTopicService)(nil)
	_ service.UserService    = (*MockUserService)(nil)
	_ service.StatsService   = (*MockStatsService)(nil)
)

// NewMockServices returns a Services value backed entirely by mocks.
func NewMockServices() (*service.Services, *MockArticleService, *MockCommentService) {
	articles := NewMockArticleService()
	comments := NewMockCommentService()
	return &service.Services{
		Article: articles,
		Comment: comments,
		Topic:   NewMockTopicService(),
		User:    NewMockUserService(),
		Stats:   &MockStatsService{},
	}, articles, comments
}

// MockArticleService is a mock implementation of ArticleService
type MockArticleService struct {
	ListFunc    func(ctx context.Context, raw map[string]string) (*models.ArticlePage, error)
	ListQueries []map[string]string
	Articles    map[int]*models.Article
	CreateFunc  func(ctx context.Context, req *models.NewArticle) (*models.Article, error)
	UpdateFunc  func(ctx context.Context, id int, update *models.VoteUpdate) (*models.Article, error)
	Deleted     []int
}

func NewMockArticleService() *MockArticleService {
	return &MockArticleService{Articles: make(map[int]*models.Article)}
}

func (m *MockArticleService) ListArticles(ctx context.Context, raw map[string]string) (*models.ArticlePage, error) {
	m.ListQueries = append(m.ListQueries, raw)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, raw)
	}
	return &models.ArticlePage{Articles: []*models.Article{}}, nil
}

func (m *MockArticleService) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	if a, ok := m.Articles[id]; ok {
		return a, nil
	}
	return nil, apperror.NotFound(fmt.Sprintf("article %d", id))
}

func (m *MockArticleService) CreateArticle(ctx context.Context, req *models.NewArticle) (*models.Article, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &models.Article{ArticleID: len(m.Articles) + 1, Author: req.Author, Title: req.Title, Topic: req.Topic, Body: req.Body}, nil
}

func (m *MockArticleService) UpdateVotes(ctx context.Context, id int, update *models.VoteUpdate) (*models.Article, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, apperror.NotFound(fmt.Sprintf("article %d", id))
	}
	a.Votes += *update.IncVotes
	return a, nil
}

func (m *MockArticleService) DeleteArticle(ctx context.Context, id int) error {
	if _, ok := m.Articles[id]; !ok {
		return apperror.NotFound(fmt.Sprintf("article %d", id))
	}
	delete(m.Articles, id)
	m.Deleted = append(m.Deleted, id)
	return nil
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	ListFunc func(ctx context.Context, articleID int, raw map[string]string) ([]*models.Comment, error)
	AddFunc  func(ctx context.Context, articleID int, req *models.NewComment) (*models.Comment, error)
	Comments map[int]*models.Comment
}

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{Comments: make(map[int]*models.Comment)}
}

func (m *MockCommentService) ListForArticle(ctx context.Context, articleID int, raw map[string]string) ([]*models.Comment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, articleID, raw)
	}
	return []*models.Comment{}, nil
}

func (m *MockCommentService) AddComment(ctx context.Context, articleID int, req *models.NewComment) (*models.Comment, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, articleID, req)
	}
	return &models.Comment{CommentID: 1, ArticleID: articleID, Author: req.Username, Body: req.Body}, nil
}

func (m *MockCommentService) UpdateVotes(ctx context.Context, id int, update *models.VoteUpdate) (*models.Comment, error) {
	c, ok := m.Comments[id]
	if !ok {
		return nil, apperror.NotFound(fmt.Sprintf("comment %d", id))
	}
	c.Votes += *update.IncVotes
	return c, nil
}

func (m *MockCommentService) DeleteComment(ctx context.Context, id int) error {
	if _, ok := m.Comments[id]; !ok {
		return apperror.NotFound(fmt.Sprintf("comment %d", id))
	}
	delete(m.Comments, id)
	return nil
}

// MockTopicService is a mock implementation of TopicService
type MockTopicService struct {
	Topics []*models.Topic
}

func NewMockTopicService() *MockTopicService {
	return &MockTopicService{Topics: make([]*models.Topic, 0)}
}

func (m *MockTopicService) ListTopics(ctx context.Context) ([]*models.Topic, error) {
	return m.Topics, nil
}

func (m *MockTopicService) CreateTopic(ctx context.Context, req *models.Topic) (*models.Topic, error) {
	if req.Slug == "" {
		return nil, apperror.BadRequest("slug is required")
	}
	m.Topics = append(m.Topics, req)
	return req, nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	Users []*models.User
}

func NewMockUserService() *MockUserService {
	return &MockUserService{Users: make([]*models.User, 0)}
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return m.Users, nil
}

func (m *MockUserService) GetUser(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperror.NotFound(fmt.Sprintf("user %q", username))
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	Table models.TableCounts
	Err   error
}

func (m *MockStatsService) Counts(ctx context.Context) (*models.TableCounts, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	c := m.Table
	return &c, nil
}
