package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardStats serves the aggregated public-dashboard snapshot. Results are
// cached in Redis for a short TTL, so the endpoint stays cheap under load.
func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.Storage.CachedDashboardStats()
	if err != nil {
		h.log.WithError(err).Error("failed to compute dashboard stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.Localizer.GetString(h.lang(c), "error.internal")})
		return
	}
	c.JSON(http.StatusOK, stats)
}
