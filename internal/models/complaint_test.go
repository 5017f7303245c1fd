package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"sauti/backend/internal/models"
)

// TestComplaintBeforeCreate_GeneratesUUID verifies the BeforeCreate hook
// assigns a valid UUID exactly once.
func TestComplaintBeforeCreate_GeneratesUUID(t *testing.T) {
	// Arrange
	complaint := &models.Complaint{RawText: "test complaint"}
	assert.Empty(t, complaint.ID, "ID should be empty before BeforeCreate")

	// Act - Call the hook directly (GORM would call this automatically)
	err := complaint.BeforeCreate(nil)

	// Assert
	assert.NoError(t, err)
	parsedUUID, parseErr := uuid.Parse(complaint.ID)
	assert.NoError(t, parseErr, "complaint ID must be a valid UUID string")
	assert.NotEqual(t, uuid.Nil, parsedUUID)
}

// TestComplaintBeforeCreate_PreservesExistingID verifies the hook never
// reassigns an ID.
func TestComplaintBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	complaint := &models.Complaint{ID: existingID}

	err := complaint.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, complaint.ID)
}

// TestComplaintBeforeCreate_BackfillsDefaults verifies empty classification
// fields receive their sentinel values on insert.
func TestComplaintBeforeCreate_BackfillsDefaults(t *testing.T) {
	complaint := &models.Complaint{RawText: "bare submission"}

	err := complaint.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, models.CategoryOther, complaint.Category)
	assert.Equal(t, models.UrgencyMedium, complaint.Urgency)
	assert.Equal(t, models.CountyUnknown, complaint.County)
}

// TestComplaintBeforeCreate_KeepsDeclaredValues verifies user-supplied
// classification fields survive the hook.
func TestComplaintBeforeCreate_KeepsDeclaredValues(t *testing.T) {
	complaint := &models.Complaint{
		RawText:  "declared submission",
		Category: models.CategoryCorruption,
		Urgency:  models.UrgencyCritical,
		County:   "Machakos",
	}

	err := complaint.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, models.CategoryCorruption, complaint.Category)
	assert.Equal(t, models.UrgencyCritical, complaint.Urgency)
	assert.Equal(t, "Machakos", complaint.County)
}

// TestClampFunctions verifies each closed vocabulary collapses unknown values
// to its default.
func TestClampFunctions(t *testing.T) {
	tests := []struct {
		name     string
		clamp    func(string) string
		input    string
		expected string
	}{
		{"valid category", models.ClampCategory, "bribery", models.CategoryBribery},
		{"unknown category", models.ClampCategory, "witchcraft", models.CategoryOther},
		{"empty category", models.ClampCategory, "", models.CategoryOther},
		{"case-sensitive category", models.ClampCategory, "Bribery", models.CategoryOther},
		{"valid urgency", models.ClampUrgency, "critical", models.UrgencyCritical},
		{"unknown urgency", models.ClampUrgency, "urgent-ish", models.UrgencyMedium},
		{"empty urgency", models.ClampUrgency, "", models.UrgencyMedium},
		{"valid sentiment", models.ClampSentiment, "positive", models.SentimentPositive},
		{"unknown sentiment", models.ClampSentiment, "furious", models.SentimentNeutral},
		{"empty sentiment", models.ClampSentiment, "", models.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.clamp(tt.input))
		})
	}
}

// TestDefaultDetectionHelpers verifies the helpers that decide whether an
// AI-derived value may overwrite a field.
func TestDefaultDetectionHelpers(t *testing.T) {
	defaulted := models.Complaint{
		Category: models.CategoryOther,
		Urgency:  models.UrgencyMedium,
		County:   models.CountyUnknown,
	}
	assert.True(t, defaulted.HasDefaultCategory())
	assert.True(t, defaulted.HasDefaultUrgency())
	assert.True(t, defaulted.HasUnknownCounty())

	empty := models.Complaint{}
	assert.True(t, empty.HasDefaultCategory(), "unset fields count as default")
	assert.True(t, empty.HasDefaultUrgency())
	assert.True(t, empty.HasUnknownCounty())

	declared := models.Complaint{
		Category: models.CategoryDelay,
		Urgency:  models.UrgencyLow,
		County:   "Busia",
	}
	assert.False(t, declared.HasDefaultCategory())
	assert.False(t, declared.HasDefaultUrgency())
	assert.False(t, declared.HasUnknownCounty())
}
