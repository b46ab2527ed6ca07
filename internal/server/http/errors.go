package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/habitcheck/internal/common"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorBadRequest), errors.Is(err, common.ErrorConflict):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as {"error": ...}. Server errors are logged with their
// cause and answered with a generic message.
func (s *HTTPServer) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed",
			"request_id", c.GetString(requestIDKey),
			"path", c.FullPath(),
			"error", err.Error(),
		)
		c.JSON(status, errorResponse{Error: common.ErrorInternal.Error()})
		return
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}
