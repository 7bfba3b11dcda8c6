package service

import (
	"context"
	"fmt"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/news-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments  repository.CommentRepository
	exists    repository.ExistenceChecker
	validator *validation.Validator
	log       zerolog.Logger
}

func newCommentService(repos *repository.Repositories, v *validation.Validator, log zerolog.Logger) *commentService {
	return &commentService{
		comments:  repos.Comment,
		exists:    repos.Exists,
		validator: v,
		log:       log.With().Str("service", "comment").Logger(),
	}
}

// ListForArticle returns one page of comments for an existing article
func (s *commentService) ListForArticle(ctx context.Context, articleID int, raw map[string]string) ([]*models.Comment, error) {
	page, err := validation.ValidatePageQuery(raw)
	if err != nil {
		return nil, err
	}

	if err := s.exists.Exists(ctx, models.EntityArticle, "article_id", articleID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByArticle(ctx, articleID, page)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

// AddComment validates the body, then checks the article and the author
// concurrently before inserting.
func (s *commentService) AddComment(ctx context.Context, articleID int, req *models.NewComment) (*models.Comment, error) {
	if err := s.validator.ValidateNewComment(req); err != nil {
		return nil, err
	}

	err := requireAll(ctx,
		mustExist(s.exists, models.EntityArticle, "article_id", articleID),
		mustExist(s.exists, models.EntityUser, "username", req.Username),
	)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.Create(ctx, articleID, req)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	s.log.Info().
		Int("comment_id", comment.CommentID).
		Int("article_id", articleID).
		Str("author", comment.Author).
		Msg("Comment posted")
	return comment, nil
}

// UpdateVotes applies inc_votes to a comment
func (s *commentService) UpdateVotes(ctx context.Context, id int, update *models.VoteUpdate) (*models.Comment, error) {
	if err := s.validator.ValidateVoteUpdate(update); err != nil {
		return nil, err
	}

	if err := s.exists.Exists(ctx, models.EntityComment, "comment_id", id); err != nil {
		return nil, err
	}

	comment, err := s.comments.IncrementVotes(ctx, id, *update.IncVotes)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	if comment == nil {
		return nil, apperror.NotFound(fmt.Sprintf("comment %d", id))
	}
	return comment, nil
}

// DeleteComment removes a comment
func (s *commentService) DeleteComment(ctx context.Context, id int) error {
	deleted, err := s.comments.Delete(ctx, id)
	if err != nil {
		return apperror.FromDB(err)
	}
	if !deleted {
		return apperror.NotFound(fmt.Sprintf("comment %d", id))
	}
	s.log.Info().Int("comment_id", id).Msg("Comment deleted")
	return nil
}
