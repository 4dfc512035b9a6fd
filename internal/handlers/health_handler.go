package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCounter is satisfied by *session.Store.
type SessionCounter interface {
	Len() int
}

func Health(sessions SessionCounter, satelliteID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"satellite": satelliteID,
			"sessions":  sessions.Len(),
		})
	}
}
