// Package handler wires the HTTP API: complaint submission and lookup, the
// public dashboard, anonymous identity issuance and the live-feed WebSocket.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sauti/backend/internal/enrichment"
	"sauti/backend/internal/feed"
	"sauti/backend/internal/localization"
	"sauti/backend/internal/logger"
	"sauti/backend/internal/storage"
)

type Handler struct {
	Storage      storage.Storage
	Orchestrator *enrichment.Orchestrator
	Hub          *feed.Hub
	Localizer    *localization.Localizer

	log *logrus.Entry
}

func NewHandler(s storage.Storage, o *enrichment.Orchestrator, hub *feed.Hub, loc *localization.Localizer, log *logger.Logger) *Handler {
	return &Handler{
		Storage:      s,
		Orchestrator: o,
		Hub:          hub,
		Localizer:    loc,
		log:          log.WithComponent("api"),
	}
}

// lang picks the response language from the ?lang query parameter, falling
// back to English for anything not loaded.
func (h *Handler) lang(c *gin.Context) string {
	if l := c.Query("lang"); l != "" && h.Localizer.HasLanguage(l) {
		return l
	}
	return "en"
}
