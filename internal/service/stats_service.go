package service

import (
	"context"

	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

type statsService struct {
	repos *repository.Repositories
}

func newStatsService(repos *repository.Repositories) *statsService {
	return &statsService{repos: repos}
}

// Counts queries the four table sizes in parallel.
func (s *statsService) Counts(ctx context.Context) (*models.TableCounts, error) {
	var counts models.TableCounts

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.Topics, err = s.repos.Topic.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Users, err = s.repos.User.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Articles, err = s.repos.Article.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Comments, err = s.repos.Comment.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &counts, nil
}
