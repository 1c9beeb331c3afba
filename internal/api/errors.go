package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/news-board-api/internal/apperror"
	"github.com/news-board-api/internal/metrics"
	"github.com/news-board-api/internal/middleware"
	"github.com/rs/zerolog"
)

// ErrorHandler answers err or hands it to next
type ErrorHandler func(c *gin.Context, err error, next func(error))

// badRequestCodes are the postgres error codes caused by client input
var badRequestCodes = map[pq.ErrorCode]bool{
	"22P02": true, // invalid_text_representation
	"23502": true, // not_null_violation
	"23503": true, // foreign_key_violation
	"22003": true, // numeric_value_out_of_range
}

// ErrorChain runs after the handlers and answers the last error they recorded
// with the first handler in the chain that claims it.
func ErrorChain(handlers ...ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		dispatch(c, handlers, c.Errors.Last().Err)
	}
}

func dispatch(c *gin.Context, handlers []ErrorHandler, err error) {
	if len(handlers) == 0 {
		return
	}
	handlers[0](c, err, func(err error) {
		dispatch(c, handlers[1:], err)
	})
}

// DefaultErrorHandlers returns custom, driver and server stages in order
func DefaultErrorHandlers(log zerolog.Logger) []ErrorHandler {
	return []ErrorHandler{
		HandleCustomErrors,
		HandleDriverErrors,
		HandleServerErrors(log),
	}
}

// HandleCustomErrors answers errors that carry their own status and message
func HandleCustomErrors(c *gin.Context, err error, next func(error)) {
	appErr, ok := apperror.As(err)
	if !ok {
		next(err)
		return
	}
	metrics.ObserveError("custom", appErr.Status)
	respondMsg(c, appErr.Status, appErr.Msg)
}

// HandleDriverErrors maps database errors caused by bad input to 400
func HandleDriverErrors(c *gin.Context, err error, next func(error)) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || !badRequestCodes[pqErr.Code] {
		next(err)
		return
	}
	metrics.ObserveError("driver", http.StatusBadRequest)
	respondMsg(c, http.StatusBadRequest, apperror.MsgBadRequest)
}

// HandleServerErrors logs anything unclassified and answers 500
func HandleServerErrors(log zerolog.Logger) ErrorHandler {
	return func(c *gin.Context, err error, _ func(error)) {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", middleware.GetRequestID(c)).
			Msg("Unhandled error")
		metrics.ObserveError("server", http.StatusInternalServerError)
		respondMsg(c, http.StatusInternalServerError, apperror.MsgInternalServer)
	}
}

func notFound(c *gin.Context) {
	metrics.ObserveError("route", http.StatusNotFound)
	respondMsg(c, http.StatusNotFound, apperror.MsgNotFound)
}

func respondMsg(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"msg": msg})
}
