package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-board-api/internal/apperror"
	"github.com/news-board-api/internal/models"
	"github.com/news-board-api/internal/service"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	comments service.CommentService
	log      zerolog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		comments: services.Comment,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListArticleComments handles GET /api/articles/:article_id/comments
func (h *CommentHandler) ListArticleComments(c *gin.Context) {
	articleID, err := pathID(c, "article_id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	comments, err := h.comments.ListArticleComments(c.Request.Context(), articleID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articleComments": comments})
}

// CreateComment handles POST /api/articles/:article_id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	articleID, err := pathID(c, "article_id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req models.NewComment
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Int("article_id", articleID).Msg("Rejected comment body")
		_ = c.Error(apperror.BadRequest(apperror.MsgBadRequest))
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), articleID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"addedComment": comment})
}

// DeleteComment handles DELETE /api/comments/:comment_id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := pathID(c, "comment_id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.comments.DeleteComment(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateCommentVotes handles PATCH /api/comments/:comment_id
func (h *CommentHandler) UpdateCommentVotes(c *gin.Context) {
	id, err := pathID(c, "comment_id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	update, err := bindVoteUpdate(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	comment, err := h.comments.UpdateCommentVotes(c.Request.Context(), id, update)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updatedComment": comment})
}
