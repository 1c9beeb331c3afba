package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/news-board-api/internal/apperror"
	"github.com/news-board-api/internal/models"
)

// pathID parses an integer path parameter
func pathID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, apperror.BadRequest(apperror.MsgBadRequest)
	}
	return id, nil
}

// bindVoteUpdate decodes an {inc_votes} body; shape checks happen in the service
func bindVoteUpdate(c *gin.Context) (*models.VoteUpdate, error) {
	var update models.VoteUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		return nil, apperror.BadRequest(apperror.MsgBadRequest)
	}
	return &update, nil
}
