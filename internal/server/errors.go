package server

import (
	"errors"
	"log"
	"net/http"

	"rank-tracker/internal/tracker"

	"github.com/gin-gonic/gin"
)

// renderServiceError maps the tracker error taxonomy onto HTTP. Unknown
// errors are logged and reported as a generic 500; details never leak.
func renderServiceError(c *gin.Context, err error) {
	var verr *tracker.ValidationError
	switch {
	case errors.Is(err, tracker.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, tracker.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, tracker.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, tracker.ErrNameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "game name already taken"})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Message, "field": verr.Field})
	default:
		log.Printf("internal error path=%s: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
