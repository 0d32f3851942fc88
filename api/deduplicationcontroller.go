package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsflow/deduplication"
)

// RegisterDeduplicationRoutes registers dedup cache inspection endpoints.
func RegisterDeduplicationRoutes(r *gin.Engine, filter *deduplication.Filter) {
	g := r.Group("/api/dedup")
	g.GET("/stats", handleDedupStats(filter))
	g.DELETE("/clear", handleDedupClear(filter))
}

// handleDedupStats returns the current dedup cache statistics
func handleDedupStats(filter *deduplication.Filter) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := filter.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read dedup stats: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// handleDedupClear wipes the dedup cache. Every article fetched afterwards is
// treated as novel until re-seen.
func handleDedupClear(filter *deduplication.Filter) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := filter.Clear(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear dedup cache: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":       "cleared",
			"deleted_keys": deleted,
		})
	}
}
