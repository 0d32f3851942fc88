// Package api exposes a small admin surface for the polling service.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newsflow/deduplication"
)

// Deps holds the service handles the admin routes operate on.
type Deps struct {
	Filter *deduplication.Filter
	// TriggerPoll requests an out-of-schedule polling cycle. It must not
	// block; the handler returns before the cycle runs.
	TriggerPoll func()
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterDeduplicationRoutes(r, deps.Filter)
	RegisterPollingRoutes(r, deps.TriggerPoll)
	RegisterHealthRoutes(r)
	return r
}

// RegisterHealthRoutes registers the liveness endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", handleHealth)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "news-polling-service",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
