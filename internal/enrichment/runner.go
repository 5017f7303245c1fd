package enrichment

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"sauti/backend/internal/config"
	"sauti/backend/internal/logger"
	"sauti/backend/internal/models"
	"sauti/backend/internal/storage"
)

// Tally is the outcome of one batch sweep.
type Tally struct {
	Processed int
	Failed    int
}

func (t Tally) String() string {
	return fmt.Sprintf("processed=%d failed=%d", t.Processed, t.Failed)
}

// Runner sweeps the backlog of unprocessed complaints (or, under force, any
// bounded slice of the table) through the Orchestrator, one at a time.
type Runner struct {
	Storage      storage.Storage
	Orchestrator *Orchestrator

	log *logrus.Entry
}

func NewRunner(s storage.Storage, o *Orchestrator, log *logger.Logger) *Runner {
	return &Runner{
		Storage:      s,
		Orchestrator: o,
		log:          log.WithComponent("batch"),
	}
}

// Run processes at most limit complaints sequentially. A failure on one item
// never aborts the rest of the batch; it is counted and the sweep continues.
// The returned error covers only batch-level failures (the selection query),
// not per-item ones.
func (r *Runner) Run(ctx context.Context, limit int, force bool) (Tally, error) {
	if limit <= 0 {
		limit = config.DefaultBatchLimit
	}

	complaints, err := r.selectBatch(limit, force)
	if err != nil {
		return Tally{}, fmt.Errorf("select complaints: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"count": len(complaints),
		"force": force,
	}).Info("starting batch enrichment")

	var tally Tally
	for i := range complaints {
		complaint := &complaints[i]
		if err := r.Orchestrator.Process(ctx, complaint); err != nil {
			tally.Failed++
			r.log.WithField("complaint_id", complaint.ID).WithError(err).Error("complaint enrichment failed")
			continue
		}
		tally.Processed++
		r.log.WithFields(logrus.Fields{
			"complaint_id": complaint.ID,
			"category":     complaint.Category,
			"urgency":      complaint.Urgency,
		}).Info("complaint enriched")
	}

	return tally, nil
}

func (r *Runner) selectBatch(limit int, force bool) ([]models.Complaint, error) {
	if force {
		return r.Storage.ListComplaints(limit)
	}
	return r.Storage.ListUnprocessedComplaints(limit)
}
