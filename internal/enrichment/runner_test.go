package enrichment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sauti/backend/internal/ai"
	"sauti/backend/internal/config"
	"sauti/backend/internal/enrichment"
	"sauti/backend/internal/logger"
	"sauti/backend/internal/models"
)

func newTestRunner(s *MockStorage, client ai.Client) *enrichment.Runner {
	log := logger.New()
	return enrichment.NewRunner(s, enrichment.NewOrchestrator(s, client, log), log)
}

func neutralAnalysis() *ai.Analysis {
	return &ai.Analysis{
		Summary:   "summary",
		Category:  models.CategoryOther,
		Urgency:   models.UrgencyMedium,
		County:    models.CountyUnknown,
		Sentiment: models.SentimentNeutral,
	}
}

// TestRunnerFailureIsolation verifies one bad complaint never aborts the rest
// of the batch.
func TestRunnerFailureIsolation(t *testing.T) {
	// Arrange
	storageMock := new(MockStorage)
	aiMock := new(MockAIClient)
	runner := newTestRunner(storageMock, aiMock)

	batch := []models.Complaint{
		{ID: "b-1", RawText: "first"},
		{ID: "b-2", RawText: "second"},
		{ID: "b-3", RawText: "poison"},
		{ID: "b-4", RawText: "fourth"},
		{ID: "b-5", RawText: "fifth"},
	}

	storageMock.On("ListUnprocessedComplaints", 5).Return(batch, nil).Once()
	aiMock.On("Analyze", mock.Anything, "poison").
		Return(nil, &ai.AnalysisServiceError{StatusCode: 500, Err: errors.New("boom")}).Once()
	aiMock.On("Analyze", mock.Anything, mock.Anything).Return(neutralAnalysis(), nil)
	storageMock.On("SaveComplaint", mock.AnythingOfType("*models.Complaint")).Return(nil).Times(5)
	storageMock.On("PublishComplaintEvent", mock.Anything).Return(nil).Times(4)

	// Act
	tally, err := runner.Run(context.Background(), 5, false)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 4, tally.Processed)
	assert.Equal(t, 1, tally.Failed)
	storageMock.AssertExpectations(t)
}

// TestRunnerDefaultLimit verifies a zero or negative limit falls back to the
// configured default.
func TestRunnerDefaultLimit(t *testing.T) {
	storageMock := new(MockStorage)
	aiMock := new(MockAIClient)
	runner := newTestRunner(storageMock, aiMock)

	storageMock.On("ListUnprocessedComplaints", config.DefaultBatchLimit).
		Return([]models.Complaint{}, nil).Once()

	tally, err := runner.Run(context.Background(), 0, false)

	assert.NoError(t, err)
	assert.Equal(t, enrichment.Tally{}, tally)
	storageMock.AssertExpectations(t)
}

// TestRunnerForceSelectsAllComplaints verifies force mode re-runs complaints
// regardless of their processed flag.
func TestRunnerForceSelectsAllComplaints(t *testing.T) {
	storageMock := new(MockStorage)
	aiMock := new(MockAIClient)
	runner := newTestRunner(storageMock, aiMock)

	batch := []models.Complaint{{ID: "b-6", RawText: "already done", AIProcessed: true}}

	storageMock.On("ListComplaints", 3).Return(batch, nil).Once()
	aiMock.On("Analyze", mock.Anything, "already done").Return(neutralAnalysis(), nil).Once()
	storageMock.On("SaveComplaint", mock.AnythingOfType("*models.Complaint")).Return(nil).Once()
	storageMock.On("PublishComplaintEvent", mock.Anything).Return(nil).Once()

	tally, err := runner.Run(context.Background(), 3, true)

	assert.NoError(t, err)
	assert.Equal(t, 1, tally.Processed)
	storageMock.AssertNotCalled(t, "ListUnprocessedComplaints", mock.Anything)
}

// TestRunnerSelectionFailure verifies a failing selection query aborts the
// sweep before any per-item work.
func TestRunnerSelectionFailure(t *testing.T) {
	storageMock := new(MockStorage)
	aiMock := new(MockAIClient)
	runner := newTestRunner(storageMock, aiMock)

	storageMock.On("ListUnprocessedComplaints", 10).
		Return(nil, errors.New("db down")).Once()

	tally, err := runner.Run(context.Background(), 10, false)

	assert.Error(t, err)
	assert.Equal(t, enrichment.Tally{}, tally)
	aiMock.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
	storageMock.AssertNotCalled(t, "SaveComplaint", mock.Anything)
}

// TestTallyString pins the log-friendly format of a sweep summary.
func TestTallyString(t *testing.T) {
	tally := enrichment.Tally{Processed: 7, Failed: 2}
	assert.Equal(t, "processed=7 failed=2", tally.String())
}
