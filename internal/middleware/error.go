package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebook/backend/internal/service"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Message   string    `json:"message"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"requestId,omitempty"`
}

// WriteError aborts the request with a JSON error body
func WriteError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Message:   message,
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: c.GetString(RequestIDKey),
	})
}

// StatusFor maps an error attached to the gin context onto a status code and
// the message shown to the client. Internal details are never exposed.
func StatusFor(err error) (int, string) {
	var exists *service.AlreadyExistsError
	var notFound *service.NotFoundError
	var ginErr *gin.Error

	switch {
	case errors.As(err, &exists):
		return http.StatusConflict, exists.Error()
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error()
	case errors.As(err, &ginErr) && ginErr.IsType(gin.ErrorTypeBind):
		return http.StatusBadRequest, ginErr.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

// ErrorHandler renders the last error a handler attached with c.Error and
// turns panics into 500 responses.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				panicRecoveries.Inc()
				log.Error("panic recovered",
					zap.String("error", fmt.Sprint(rec)),
					zap.String("requestId", c.GetString(RequestIDKey)),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				WriteError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last()
		status, message := StatusFor(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.Error(err.Err),
				zap.String("requestId", c.GetString(RequestIDKey)),
				zap.String("path", c.Request.URL.Path),
			)
		}
		WriteError(c, status, message)
	}
}
