package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "voicescribe/internal/api/errors"
	"voicescribe/internal/api/v1/dto"
	apperrors "voicescribe/internal/app/errors"
)

// ErrorHandler recovers from panics and turns them into the standard
// `{success:false, error}` response.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(ContextRequestID)

		logger.Error("panic recovered",
			"recovered", recovered,
			"request_id", requestID,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Success: false,
			Error:   "Transcription failed. Please try again.",
		})
	})
}

// HandleError writes the response for a failed handler: the status follows
// the domain error's kind, the message is the kind-derived user phrase.
func HandleError(c *gin.Context, logger *slog.Logger, err error) {
	if err == nil {
		return
	}

	requestID := c.GetString(ContextRequestID)
	status := apierrors.HTTPStatus(err)

	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"error", err.Error(),
			"kind", apperrors.KindOf(err),
			"request_id", requestID,
			"path", c.Request.URL.Path,
		)
	} else {
		logger.Info("request rejected",
			"error", err.Error(),
			"request_id", requestID,
			"path", c.Request.URL.Path,
		)
	}

	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Success: false,
		Error:   apperrors.UserMessage(err),
	})
}
