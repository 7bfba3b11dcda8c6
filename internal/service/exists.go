package service

import (
	"context"

	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

// check is one pre-flight existence check run before a dependent operation.
type check func(ctx context.Context) error

// bind fixes the context c runs under, for use with errgroup.Go.
func (c check) bind(ctx context.Context) func() error {
	return func() error {
		return c(ctx)
	}
}

// mustExist builds a check that fails with not-found when no row of kind has
// column = value.
func mustExist(checker repository.ExistenceChecker, kind models.EntityKind, column string, value interface{}) check {
	return func(ctx context.Context) error {
		return checker.Exists(ctx, kind, column, value)
	}
}

// requireAll runs checks concurrently and returns the first failure. The
// shared context is cancelled as soon as one check fails.
func requireAll(ctx context.Context, checks ...check) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range checks {
		g.Go(c.bind(gctx))
	}
	return g.Wait()
}
