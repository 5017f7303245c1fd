package handler

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sauti/backend/internal/ai"
	"sauti/backend/internal/config"
	"sauti/backend/internal/enrichment"
	"sauti/backend/internal/models"
	"sauti/backend/internal/storage"
)

// SubmitComplaint accepts a multipart submission (text, category, county,
// audio, image, officer, department, anonymous flag), persists it and runs
// the enrichment pipeline before answering. An AI failure never fails the
// request: the record is kept with ai_processed = false and the citizen still
// gets a 201.
func (h *Handler) SubmitComplaint(c *gin.Context) {
	rawText := c.PostForm("raw_text")

	complaint := &models.Complaint{
		RawText:        rawText,
		Category:       models.ClampCategory(c.PostForm("category")),
		Urgency:        models.ClampUrgency(c.PostForm("urgency")),
		County:         ai.MatchCounty(c.PostForm("county")),
		OfficerName:    c.PostForm("officer_name"),
		DepartmentName: c.PostForm("department_name"),
		IsAnonymous:    c.PostForm("anonymous") == "true",
	}

	if !complaint.IsAnonymous {
		if anonID := bearerAnonID(c); anonID != "" {
			complaint.UserID = &anonID
		}
	}

	audioPath, err := h.saveUpload(c, "audio_file", config.MaxAudioUploadBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.Localizer.GetString(h.lang(c), "error.audio_too_large")})
		return
	}
	complaint.AudioFile = audioPath

	imagePath, err := h.saveUpload(c, "image_file", config.MaxImageUploadBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.Localizer.GetString(h.lang(c), "error.image_too_large")})
		return
	}
	complaint.ImageFile = imagePath

	if complaint.RawText == "" && complaint.AudioFile == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.Localizer.GetString(h.lang(c), "error.empty_complaint")})
		return
	}

	if err := h.Storage.CreateComplaint(complaint); err != nil {
		h.log.WithError(err).Error("failed to create complaint")
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.Localizer.GetString(h.lang(c), "error.internal")})
		return
	}

	if complaint.UserID != nil {
		if err := h.Storage.AddAccountabilityPoints(*complaint.UserID, config.AccountabilityPointPerComplaint); err != nil {
			h.log.WithField("user_id", *complaint.UserID).WithError(err).Warn("failed to award accountability point")
		}
	}

	h.publishCreated(complaint)

	// Synchronous enrichment; degradation is deliberate here.
	if err := h.Orchestrator.Process(c.Request.Context(), complaint); err != nil {
		var enrichErr *enrichment.EnrichmentError
		if errors.As(err, &enrichErr) {
			h.log.WithField("complaint_id", complaint.ID).WithError(err).Warn("complaint stored unenriched, batch run will retry")
		} else {
			h.log.WithField("complaint_id", complaint.ID).WithError(err).Error("enrichment pipeline error")
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           complaint.ID,
		"ai_processed": complaint.AIProcessed,
		"message":      h.Localizer.GetString(h.lang(c), "complaint.submitted"),
	})
}

// GetComplaint returns one complaint by its ID.
func (h *Handler) GetComplaint(c *gin.Context) {
	complaint, err := h.Storage.GetComplaintByID(c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": h.Localizer.GetString(h.lang(c), "error.not_found")})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.Localizer.GetString(h.lang(c), "error.internal")})
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// ListRecentComplaints serves the dashboard's initial live-feed page.
func (h *Handler) ListRecentComplaints(c *gin.Context) {
	complaints, err := h.Storage.ListComplaints(config.RecentFeedLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.Localizer.GetString(h.lang(c), "error.internal")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": complaints})
}

// saveUpload stores a form file under the uploads directory with a generated
// name. Returns "" when the field was not supplied.
func (h *Handler) saveUpload(c *gin.Context, field string, maxBytes int64) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil // optional field
	}
	if file.Size > maxBytes {
		return "", fmt.Errorf("%s exceeds %d bytes", field, maxBytes)
	}

	if err := os.MkdirAll(config.UploadDir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(config.UploadDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func (h *Handler) publishCreated(complaint *models.Complaint) {
	event := models.ComplaintEvent{
		ComplaintID: complaint.ID,
		Kind:        "created",
		Category:    complaint.Category,
		Urgency:     complaint.Urgency,
		County:      complaint.County,
		CreatedAt:   complaint.CreatedAt,
	}
	if err := h.Storage.PublishComplaintEvent(event); err != nil {
		h.log.WithField("complaint_id", complaint.ID).WithError(err).Warn("failed to publish created event")
	}
}
