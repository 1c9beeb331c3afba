package service

import (
	"context"

	"github.com/news-board-api/internal/models"
	"github.com/news-board-api/internal/repository"
)

type topicService struct {
	topics repository.TopicRepository
}

func newTopicService(topics repository.TopicRepository) *topicService {
	return &topicService{topics: topics}
}

// ListTopics returns every topic
func (s *topicService) ListTopics(ctx context.Context) ([]models.Topic, error) {
	return s.topics.List(ctx)
}
