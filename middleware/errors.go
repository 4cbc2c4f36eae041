package middleware

import (
	"errors"

	"food-ordering-api/apperror"

	"github.com/gin-gonic/gin"
)

const internalMessage = "An internal error occurred."

// AbortWithError writes err as a {message} JSON body. Unclassified and
// internal errors are recorded on the context for the request logger and
// never shown to the client.
func AbortWithError(c *gin.Context, err error) {
	status := apperror.StatusOf(err)
	message := internalMessage

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if status >= 500 {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
