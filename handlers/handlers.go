package handlers

import (
	"errors"
	"log"
	"net/http"

	"go-lifeline/types"

	"github.com/gin-gonic/gin"
)

// statusFor maps the pipeline error taxonomy onto HTTP status codes. Anything
// unclassified is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidTransition), errors.Is(err, types.ErrResourceUnavailable):
		return http.StatusConflict
	case errors.Is(err, types.ErrDownstreamTimeout):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.Printf("handler error: %v", err)
	}
	c.JSON(code, gin.H{"success": false, "error": err.Error()})
}
