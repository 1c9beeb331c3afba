package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-board-api/internal/service"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	articles service.ArticleService
	log      zerolog.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articles: services.Article,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// ListArticles handles GET /api/articles
// Query params: topic, sort_by, order
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	q := service.ArticleQuery{
		Topic:  c.Query("topic"),
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
	}

	articles, err := h.articles.ListArticles(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.log.Debug().
		Str("topic", q.Topic).
		Int("count", len(articles)).
		Msg("Listed articles")

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// GetArticle handles GET /api/articles/:article_id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := pathID(c, "article_id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	article, err := h.articles.GetArticle(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// UpdateArticleVotes handles PATCH /api/articles/:article_id
func (h *ArticleHandler) UpdateArticleVotes(c *gin.Context) {
	id, err := pathID(c, "article_id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	update, err := bindVoteUpdate(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	article, err := h.articles.UpdateArticleVotes(c.Request.Context(), id, update)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updatedArticle": article})
}
