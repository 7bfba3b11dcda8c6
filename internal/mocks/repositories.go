package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/news-api/internal/validation"
)

// Verify interface compliance
var (
	_ repository.ArticleRepository = (*MockArticleRepository)(nil)
	_ repository.CommentRepository = (*MockCommentRepository)(nil)
	_ repository.TopicRepository   = (*MockTopicRepository)(nil)
	_ repository.UserRepository    = (*MockUserRepository)(nil)
	_ repository.ExistenceChecker  = (*MockExistenceChecker)(nil)
)

// NewMockRepositories wires a fresh set of mocks into a Repositories value.
func NewMockRepositories() (*repository.Repositories, *MockArticleRepository, *MockCommentRepository, *MockExistenceChecker) {
	articles := NewMockArticleRepository()
	comments := NewMockCommentRepository()
	exists := NewMockExistenceChecker()
	return &repository.Repositories{
		Article: articles,
		Comment: comments,
		Topic:   NewMockTopicRepository(),
		User:    NewMockUserRepository(),
		Exists:  exists,
	}, articles, comments, exists
}

// MockArticleRepository is an in-memory ArticleRepository. List pages
// through Articles ordered by id unless ListFunc is set.
type MockArticleRepository struct {
	mu          sync.Mutex
	Articles    map[int]*models.Article
	NextID      int
	ListFunc    func(ctx context.Context, q validation.ArticleQuery) ([]*models.Article, int, error)
	ListCalls   []validation.ArticleQuery
	CreateError error
	CountError  error
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[int]*models.Article), NextID: 1}
}

func (m *MockArticleRepository) List(ctx context.Context, q validation.ArticleQuery) ([]*models.Article, int, error) {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, q)
	m.mu.Unlock()

	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]*models.Article, 0)
	for _, a := range m.Articles {
		if q.Topic == "" || a.Topic == q.Topic {
			matched = append(matched, a)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ArticleID < matched[j].ArticleID })

	start := q.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if q.Limit < end-start {
		end = start + q.Limit
	}
	return matched[start:end], len(matched), nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Articles[id], nil
}

func (m *MockArticleRepository) Create(ctx context.Context, req *models.NewArticle) (*models.Article, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	imgURL := req.ArticleImgURL
	if imgURL == "" {
		imgURL = models.DefaultArticleImgURL
	}
	article := &models.Article{
		ArticleID:     m.NextID,
		Author:        req.Author,
		Title:         req.Title,
		Body:          req.Body,
		Topic:         req.Topic,
		CreatedAt:     time.Now(),
		ArticleImgURL: imgURL,
	}
	m.Articles[article.ArticleID] = article
	m.NextID++
	return article, nil
}

func (m *MockArticleRepository) IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	article, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	article.Votes += delta
	return article, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Articles[id]; !ok {
		return false, nil
	}
	delete(m.Articles, id)
	return true, nil
}

func (m *MockArticleRepository) BatchInsert(ctx context.Context, articles []*models.Article) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range articles {
		m.Articles[a.ArticleID] = a
		if a.ArticleID >= m.NextID {
			m.NextID = a.ArticleID + 1
		}
	}
	return len(articles), nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Articles), nil
}

// MockCommentRepository is an in-memory CommentRepository
type MockCommentRepository struct {
	mu          sync.Mutex
	Comments    map[int]*models.Comment
	NextID      int
	CreateCalls int
	CreateError error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[int]*models.Comment), NextID: 1}
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int, page validation.PageQuery) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]*models.Comment, 0)
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if page.Limit < end-start {
		end = start + page.Limit
	}
	return matched[start:end], nil
}

func (m *MockCommentRepository) Create(ctx context.Context, articleID int, req *models.NewComment) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	comment := &models.Comment{
		CommentID: m.NextID,
		Body:      req.Body,
		ArticleID: articleID,
		Author:    req.Username,
		CreatedAt: time.Now(),
	}
	m.Comments[comment.CommentID] = comment
	m.NextID++
	return comment, nil
}

func (m *MockCommentRepository) IncrementVotes(ctx context.Context, id, delta int) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment, ok := m.Comments[id]
	if !ok {
		return nil, nil
	}
	comment.Votes += delta
	return comment, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Comments[id]; !ok {
		return false, nil
	}
	delete(m.Comments, id)
	return true, nil
}

func (m *MockCommentRepository) BatchInsert(ctx context.Context, comments []*models.Comment) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range comments {
		m.Comments[c.CommentID] = c
	}
	return len(comments), nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Comments), nil
}

// MockTopicRepository is an in-memory TopicRepository
type MockTopicRepository struct {
	mu     sync.Mutex
	Topics map[string]*models.Topic
}

func NewMockTopicRepository() *MockTopicRepository {
	return &MockTopicRepository{Topics: make(map[string]*models.Topic)}
}

func (m *MockTopicRepository) List(ctx context.Context) ([]*models.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	topics := make([]*models.Topic, 0, len(m.Topics))
	for _, t := range m.Topics {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Slug < topics[j].Slug })
	return topics, nil
}

func (m *MockTopicRepository) Create(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Topics[topic.Slug]; ok {
		return nil, apperror.BadRequest("duplicate slug")
	}
	m.Topics[topic.Slug] = topic
	return topic, nil
}

func (m *MockTopicRepository) BatchInsert(ctx context.Context, topics []*models.Topic) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range topics {
		m.Topics[t.Slug] = t
	}
	return len(topics), nil
}

func (m *MockTopicRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Topics), nil
}

// MockUserRepository is an in-memory UserRepository
type MockUserRepository struct {
	mu    sync.Mutex
	Users map[string]*models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]*models.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Users[username], nil
}

func (m *MockUserRepository) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range users {
		m.Users[u.Username] = u
	}
	return len(users), nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Users), nil
}

// MockExistenceChecker answers existence checks from a set of known rows.
// Values are compared by their fmt.Sprint form.
type MockExistenceChecker struct {
	mu     sync.Mutex
	Rows   map[models.EntityKind]map[string]bool
	Errors map[models.EntityKind]error
	Delay  map[models.EntityKind]time.Duration
	Calls  []string
}

func NewMockExistenceChecker() *MockExistenceChecker {
	return &MockExistenceChecker{
		Rows:   make(map[models.EntityKind]map[string]bool),
		Errors: make(map[models.EntityKind]error),
		Delay:  make(map[models.EntityKind]time.Duration),
	}
}

// Add marks a row as existing.
func (m *MockExistenceChecker) Add(kind models.EntityKind, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Rows[kind] == nil {
		m.Rows[kind] = make(map[string]bool)
	}
	m.Rows[kind][fmt.Sprint(value)] = true
}

// CallCount returns how many checks ran.
func (m *MockExistenceChecker) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockExistenceChecker) Exists(ctx context.Context, kind models.EntityKind, column string, value interface{}) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("%s.%s=%v", kind, column, value))
	delay := m.Delay[kind]
	err := m.Errors[kind]
	found := m.Rows[kind][fmt.Sprint(value)]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}
	if !found {
		return apperror.NotFound(fmt.Sprintf("%s %v", kind, value))
	}
	return nil
}
