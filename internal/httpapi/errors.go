package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps a service error onto an HTTP status and a stable code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDanglingParent):
		return http.StatusUnprocessableEntity, "DANGLING_PARENT"
	case errors.Is(err, domain.ErrCycle):
		return http.StatusUnprocessableEntity, "CYCLE"
	case errors.Is(err, domain.ErrInvalidNode):
		return http.StatusUnprocessableEntity, "INVALID_NODE"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func writeError(c *gin.Context, err error) {
	status, code := statusFor(err)
	_ = c.Error(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Code: code})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
}
