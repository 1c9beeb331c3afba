package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-board-api/internal/service"
)

// TopicHandler handles topic endpoints
type TopicHandler struct {
	topics service.TopicService
}

// NewTopicHandler creates a new topic handler
func NewTopicHandler(services *service.Services) *TopicHandler {
	return &TopicHandler{topics: services.Topic}
}

// ListTopics handles GET /api/topics
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := h.topics.ListTopics(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}
