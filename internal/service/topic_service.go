package service

import (
	"context"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/news-api/internal/validation"
	"github.com/rs/zerolog"
)

type topicService struct {
	topics    repository.TopicRepository
	validator *validation.Validator
	log       zerolog.Logger
}

func newTopicService(topics repository.TopicRepository, v *validation.Validator, log zerolog.Logger) *topicService {
	return &topicService{
		topics:    topics,
		validator: v,
		log:       log.With().Str("service", "topic").Logger(),
	}
}

func (s *topicService) ListTopics(ctx context.Context) ([]*models.Topic, error) {
	topics, err := s.topics.List(ctx)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return topics, nil
}

// CreateTopic inserts a topic; a duplicate slug is a bad request.
func (s *topicService) CreateTopic(ctx context.Context, req *models.Topic) (*models.Topic, error) {
	if err := s.validator.ValidateNewTopic(req); err != nil {
		return nil, err
	}

	topic, err := s.topics.Create(ctx, req)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	s.log.Info().Str("slug", topic.Slug).Msg("Topic created")
	return topic, nil
}
