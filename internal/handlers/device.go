package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errGetReadings = "failed to load readings"
)

// health reports process liveness.
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// getState returns the latest loop snapshot: last sample, target, band, link
// state and lifetime counters.
func (h *Handler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.GetState())
}

// getReadings returns recent persisted samples, newest first.
// Query param: limit (optional, clamped by the service).
func (h *Handler) getReadings(c *gin.Context) {
	ctx := c.Request.Context()

	limit := 0
	if qs := c.Query("limit"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'limit': must be an integer"})
			return
		}
		limit = v
	}

	readings, err := h.services.Readings.Recent(ctx, limit)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("readings_list_failed", "err", err, "limit", limit)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errGetReadings})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"readings": readings,
	})
}
