package middleware

import (
	"errors"
	"net/http"

	"vericv-backend/internal/delivery/http/response"
	"vericv-backend/internal/domain"
	"vericv-backend/pkg/apperror"
	"vericv-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error pushed with c.Error as the response envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if kind := apperror.KindOf(err); kind != apperror.KindInternal {
			var appErr *apperror.AppError
			errors.As(err, &appErr)
			response.Error(c, appErr.Code, appErr.Message, kind)
			return
		}

		// Internal details are logged, never sent to the client.
		logger.Log.ErrorContext(c.Request.Context(), "internal server error",
			"error", err,
			"path", c.FullPath(),
			"request_id", c.GetString(string(domain.KeyRequestID)),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", apperror.KindInternal)
	}
}
