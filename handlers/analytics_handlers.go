// api/handlers/analytics_handlers.go
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopsense/api/engine"
)

type AnalyticsHandlers struct {
	Aggregator *engine.Aggregator
}

func NewAnalyticsHandlers(aggregator *engine.Aggregator) *AnalyticsHandlers {
	return &AnalyticsHandlers{Aggregator: aggregator}
}

// GetAdminAnalytics returns the full dashboard snapshot. Unlike the
// recommendation paths, a store failure is surfaced here: the aggregate is
// the whole point of this view.
func (h *AnalyticsHandlers) GetAdminAnalytics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	snapshot, err := h.Aggregator.Snapshot(ctx, time.Now())
	if err != nil {
		log.Printf("Error building analytics snapshot: %v", err)
		if errors.Is(err, engine.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Event store unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build analytics snapshot"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
