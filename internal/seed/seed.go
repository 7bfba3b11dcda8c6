// Package seed loads the development dataset into an empty schema.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/rs/zerolog"
)

//go:embed data/development.json
var developmentJSON []byte

// Dataset is a full set of rows for every table.
type Dataset struct {
	Topics   []*models.Topic   `json:"topics"`
	Users    []*models.User    `json:"users"`
	Articles []*models.Article `json:"articles"`
	Comments []*models.Comment `json:"comments"`
}

// Development returns the embedded development dataset.
func Development() (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(developmentJSON, &ds); err != nil {
		return nil, fmt.Errorf("failed to decode development dataset: %w", err)
	}
	return &ds, nil
}

// Truncater empties tables.
type Truncater interface {
	Truncate(ctx context.Context, tables ...string) error
}

// Seeder replaces the contents of every table with a dataset.
type Seeder struct {
	db    Truncater
	repos *repository.Repositories
	log   zerolog.Logger
}

// New creates a Seeder
func New(db Truncater, repos *repository.Repositories, log zerolog.Logger) *Seeder {
	return &Seeder{
		db:    db,
		repos: repos,
		log:   log.With().Str("component", "seed").Logger(),
	}
}

// Run truncates all tables and inserts ds, parents before children.
func (s *Seeder) Run(ctx context.Context, ds *Dataset) error {
	if err := s.db.Truncate(ctx, "comments", "articles", "users", "topics"); err != nil {
		return err
	}

	steps := []struct {
		table  string
		insert func() (int, error)
	}{
		{"topics", func() (int, error) { return s.repos.Topic.BatchInsert(ctx, ds.Topics) }},
		{"users", func() (int, error) { return s.repos.User.BatchInsert(ctx, ds.Users) }},
		{"articles", func() (int, error) { return s.repos.Article.BatchInsert(ctx, ds.Articles) }},
		{"comments", func() (int, error) { return s.repos.Comment.BatchInsert(ctx, ds.Comments) }},
	}

	for _, step := range steps {
		n, err := step.insert()
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", step.table, err)
		}
		s.log.Info().Str("table", step.table).Int("rows", n).Msg("Seeded")
	}
	return nil
}
