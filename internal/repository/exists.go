package repository

import (
	"context"
	"fmt"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/database"
	"github.com/news-api/internal/models"
)

// existenceColumns lists, per table, the columns an existence check may filter
// on. Table and column are spliced into the SQL, so both must come from here.
var existenceColumns = map[models.EntityKind]map[string]bool{
	models.EntityArticle: {"article_id": true},
	models.EntityComment: {"comment_id": true},
	models.EntityTopic:   {"slug": true},
	models.EntityUser:    {"username": true},
}

type existenceChecker struct {
	db *database.DB
}

// NewExistenceChecker creates an ExistenceChecker backed by db.
func NewExistenceChecker(db *database.DB) ExistenceChecker {
	return &existenceChecker{db: db}
}

// ExistsQuery returns the existence query for kind and column, or an error if
// the pair is not allow-listed.
func ExistsQuery(kind models.EntityKind, column string) (string, error) {
	if !existenceColumns[kind][column] {
		return "", fmt.Errorf("existence check not allowed on %s.%s", kind, column)
	}
	return fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)", kind, column), nil
}

// Exists reports a not-found error when no row of kind has column = value.
func (c *existenceChecker) Exists(ctx context.Context, kind models.EntityKind, column string, value interface{}) error {
	query, err := ExistsQuery(kind, column)
	if err != nil {
		return apperror.Internal(err)
	}

	var exists bool
	if err := c.db.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		return apperror.FromDB(err)
	}
	if !exists {
		return apperror.NotFound(fmt.Sprintf("%s with %s %v", kind, column, value))
	}
	return nil
}
