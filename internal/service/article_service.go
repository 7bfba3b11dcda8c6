package service

import (
	"context"
	"fmt"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/news-api/internal/validation"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles  repository.ArticleRepository
	exists    repository.ExistenceChecker
	validator *validation.Validator
	log       zerolog.Logger
}

func newArticleService(repos *repository.Repositories, v *validation.Validator, log zerolog.Logger) *articleService {
	return &articleService{
		articles:  repos.Article,
		exists:    repos.Exists,
		validator: v,
		log:       log.With().Str("service", "article").Logger(),
	}
}

// ListArticles validates raw query parameters and returns the requested page.
// When a topic filter is given its existence is checked alongside the listing
// query; an unknown topic fails the whole call even if the page is empty.
func (s *articleService) ListArticles(ctx context.Context, raw map[string]string) (*models.ArticlePage, error) {
	q, err := validation.ValidateArticleQuery(raw)
	if err != nil {
		return nil, err
	}

	var (
		articles []*models.Article
		total    int
	)

	g, gctx := errgroup.WithContext(ctx)
	if q.Topic != "" {
		g.Go(mustExist(s.exists, models.EntityTopic, "slug", q.Topic).bind(gctx))
	}
	g.Go(func() error {
		var err error
		articles, total, err = s.articles.List(gctx, q)
		return apperror.FromDB(err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if articles == nil {
		articles = []*models.Article{}
	}

	s.log.Debug().
		Str("topic", q.Topic).
		Str("sort_by", q.SortBy.String()).
		Int("limit", q.Limit).
		Int("page", q.PageIndex+1).
		Int("total_count", total).
		Msg("Listed articles")

	return &models.ArticlePage{Articles: articles, TotalCount: total}, nil
}

// GetArticle returns one article with its live comment count
func (s *articleService) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	if article == nil {
		return nil, apperror.NotFound(fmt.Sprintf("article %d", id))
	}
	return article, nil
}

// CreateArticle checks the author and topic concurrently, then inserts.
func (s *articleService) CreateArticle(ctx context.Context, req *models.NewArticle) (*models.Article, error) {
	if err := s.validator.ValidateNewArticle(req); err != nil {
		return nil, err
	}

	err := requireAll(ctx,
		mustExist(s.exists, models.EntityUser, "username", req.Author),
		mustExist(s.exists, models.EntityTopic, "slug", req.Topic),
	)
	if err != nil {
		return nil, err
	}

	article, err := s.articles.Create(ctx, req)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	s.log.Info().Int("article_id", article.ArticleID).Str("author", article.Author).Msg("Article created")
	return article, nil
}

// UpdateVotes applies inc_votes to an article
func (s *articleService) UpdateVotes(ctx context.Context, id int, update *models.VoteUpdate) (*models.Article, error) {
	if err := s.validator.ValidateVoteUpdate(update); err != nil {
		return nil, err
	}

	if err := s.exists.Exists(ctx, models.EntityArticle, "article_id", id); err != nil {
		return nil, err
	}

	article, err := s.articles.IncrementVotes(ctx, id, *update.IncVotes)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	if article == nil {
		// deleted between the check and the update
		return nil, apperror.NotFound(fmt.Sprintf("article %d", id))
	}
	return article, nil
}

// DeleteArticle removes an article together with its comments
func (s *articleService) DeleteArticle(ctx context.Context, id int) error {
	deleted, err := s.articles.Delete(ctx, id)
	if err != nil {
		return apperror.FromDB(err)
	}
	if !deleted {
		return apperror.NotFound(fmt.Sprintf("article %d", id))
	}
	s.log.Info().Int("article_id", id).Msg("Article deleted")
	return nil
}
