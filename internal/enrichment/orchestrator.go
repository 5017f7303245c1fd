// Package enrichment drives a complaint from "just submitted" to "enriched":
// transcription of any attached audio, AI classification of the text, and a
// single persistence call covering everything that changed. AI unavailability
// never blocks the complaint's existence — failures degrade the record and
// leave it flagged for a later batch run.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sauti/backend/internal/ai"
	"sauti/backend/internal/config"
	"sauti/backend/internal/logger"
	"sauti/backend/internal/models"
	"sauti/backend/internal/storage"
)

// TranscriptionMarker separates an appended audio transcript from the
// user-typed text. Its presence means a prior run already transcribed the
// audio, so repeat runs skip that step.
const TranscriptionMarker = "[Audio Transcription]"

// EnrichmentError wraps an analysis failure. The complaint has already been
// persisted with ai_processed = false when this is returned.
type EnrichmentError struct {
	ComplaintID string
	Err         error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enrichment failed for complaint %s: %v", e.ComplaintID, e.Err)
}

func (e *EnrichmentError) Unwrap() error { return e.Err }

// Alerter is notified about enriched complaints that need human attention.
type Alerter interface {
	AlertCritical(complaint *models.Complaint)
}

// Orchestrator sequences transcription, analysis and persistence for one
// complaint. The same instance serves both the synchronous submission path
// and the batch runner.
type Orchestrator struct {
	Storage  storage.Storage
	AI       ai.Client
	Language string // source language hint for transcription
	Alerter  Alerter

	log *logrus.Entry
}

func NewOrchestrator(s storage.Storage, client ai.Client, log *logger.Logger) *Orchestrator {
	lang := os.Getenv("AUDIO_LANGUAGE")
	if lang == "" {
		lang = config.DefaultAudioLanguage
	}
	return &Orchestrator{
		Storage:  s,
		AI:       client,
		Language: lang,
		log:      log.WithComponent("enrichment"),
	}
}

// Process runs the pipeline for one complaint. It is idempotent: a second run
// with the same audio never appends a second transcript, and re-analysis only
// overwrites fields still at their defaults.
//
// Transcription failure is logged and non-fatal. Analysis failure resets
// ai_processed to false and comes back as *EnrichmentError, but the complaint
// (including any transcript appended in step 1) is persisted regardless.
func (o *Orchestrator) Process(ctx context.Context, complaint *models.Complaint) error {
	o.transcribe(ctx, complaint)

	var analysisErr error
	if complaint.RawText != "" {
		analysisErr = o.analyze(ctx, complaint)
	}

	if err := o.Storage.SaveComplaint(complaint); err != nil {
		return fmt.Errorf("persist complaint %s: %w", complaint.ID, err)
	}

	if analysisErr != nil {
		return &EnrichmentError{ComplaintID: complaint.ID, Err: analysisErr}
	}

	if complaint.AIProcessed {
		o.publishEnriched(complaint)
		if o.Alerter != nil {
			o.Alerter.AlertCritical(complaint)
		}
	}
	return nil
}

// errAIUnavailable stands in for a client that could not be constructed; the
// server keeps accepting submissions and leaves them for a later batch run.
var errAIUnavailable = errors.New("ai client not configured")

func (o *Orchestrator) transcribe(ctx context.Context, complaint *models.Complaint) {
	if o.AI == nil || complaint.AudioFile == "" {
		return
	}
	// The marker search is kept for records written before transcribed_at
	// existed; user text containing the literal marker also skips here.
	if complaint.TranscribedAt != nil || strings.Contains(complaint.RawText, TranscriptionMarker) {
		return
	}

	transcript, err := o.AI.Transcribe(ctx, complaint.AudioFile, o.Language)
	if err != nil {
		o.log.WithField("complaint_id", complaint.ID).WithError(err).Warn("audio transcription failed, continuing without transcript")
		return
	}

	if complaint.RawText != "" {
		complaint.RawText += fmt.Sprintf("\n\n%s: %s", TranscriptionMarker, transcript)
	} else {
		complaint.RawText = transcript
	}
	now := time.Now().UTC()
	complaint.TranscribedAt = &now
}

func (o *Orchestrator) analyze(ctx context.Context, complaint *models.Complaint) error {
	if o.AI == nil {
		complaint.AIProcessed = false
		return errAIUnavailable
	}

	analysis, err := o.AI.Analyze(ctx, complaint.RawText)
	if err != nil {
		// Deliberately pessimistic: a failed re-run un-marks a previously
		// processed record so the batch runner picks it up again.
		complaint.AIProcessed = false
		return err
	}

	complaint.Summary = analysis.Summary
	complaint.Sentiment = analysis.Sentiment

	// A user-declared specific value is never clobbered.
	if complaint.HasDefaultCategory() {
		complaint.Category = analysis.Category
	}
	if complaint.HasDefaultUrgency() {
		complaint.Urgency = analysis.Urgency
	}
	if complaint.HasUnknownCounty() {
		complaint.County = analysis.County
	}

	complaint.AIProcessed = true
	return nil
}

func (o *Orchestrator) publishEnriched(complaint *models.Complaint) {
	event := models.ComplaintEvent{
		ComplaintID: complaint.ID,
		Kind:        "enriched",
		Category:    complaint.Category,
		Urgency:     complaint.Urgency,
		County:      complaint.County,
		Summary:     complaint.Summary,
		CreatedAt:   complaint.CreatedAt,
	}
	if err := o.Storage.PublishComplaintEvent(event); err != nil {
		o.log.WithField("complaint_id", complaint.ID).WithError(err).Warn("failed to publish enriched event")
	}
}
