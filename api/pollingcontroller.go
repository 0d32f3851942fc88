package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterPollingRoutes registers the manual poll trigger.
func RegisterPollingRoutes(r *gin.Engine, trigger func()) {
	r.POST("/api/poll", handleTriggerPoll(trigger))
}

// handleTriggerPoll kicks off an extra polling cycle and returns immediately.
// The cycle runs on the service's own loop; overlapping requests while one is
// in flight are coalesced there.
func handleTriggerPoll(trigger func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		if trigger == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "polling service not running"})
			return
		}
		trigger()
		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": "polling cycle started",
		})
	}
}
