package middleware

import (
	"net/http"

	"advisor-api/internal/services"
	"advisor-api/internal/transport/httpdto"
	advisor_errors "advisor-api/pkg/errors"
	"advisor-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Server-side failures are logged with their cause; the client only sees the
// public message.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := services.HTTPStatus(err)
		if status >= http.StatusInternalServerError && l != nil {
			l.ErrorCtx(c.Request.Context(), "request error",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		c.JSON(status, httpdto.NewErrorResponse(advisor_errors.Message(err, services.MsgServerError)))
	}
}
