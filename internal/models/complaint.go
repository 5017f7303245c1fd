package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint categories. Any value outside this set collapses to CategoryOther.
const (
	CategoryCorruption     = "corruption"
	CategoryDelay          = "delay"
	CategoryBribery        = "bribery"
	CategoryMisconduct     = "misconduct"
	CategoryLostDocuments  = "lost_documents"
	CategoryInfrastructure = "infrastructure_damage"
	CategoryOther          = "other"
)

// Urgency levels. Any value outside this set collapses to UrgencyMedium.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// Machine-derived sentiment values. Any value outside this set collapses to
// SentimentNeutral.
const (
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentPositive = "positive"
)

// CountyUnknown is the sentinel used when no valid county is known.
const CountyUnknown = "Unknown"

var validCategories = map[string]bool{
	CategoryCorruption:     true,
	CategoryDelay:          true,
	CategoryBribery:        true,
	CategoryMisconduct:     true,
	CategoryLostDocuments:  true,
	CategoryInfrastructure: true,
	CategoryOther:          true,
}

var validUrgencies = map[string]bool{
	UrgencyLow:      true,
	UrgencyMedium:   true,
	UrgencyHigh:     true,
	UrgencyCritical: true,
}

var validSentiments = map[string]bool{
	SentimentNegative: true,
	SentimentNeutral:  true,
	SentimentPositive: true,
}

// ClampCategory returns the category itself when it is one of the closed set,
// CategoryOther otherwise.
func ClampCategory(v string) string {
	if validCategories[v] {
		return v
	}
	return CategoryOther
}

func ClampUrgency(v string) string {
	if validUrgencies[v] {
		return v
	}
	return UrgencyMedium
}

func ClampSentiment(v string) string {
	if validSentiments[v] {
		return v
	}
	return SentimentNeutral
}

// Complaint is one citizen report. Raw text may later be augmented with an
// audio transcript, and the classification fields are filled by AI analysis.
type Complaint struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	UserID      *string `gorm:"index" json:"user_id,omitempty"` // nil when anonymous
	IsAnonymous bool    `json:"is_anonymous"`

	RawText string `gorm:"type:text" json:"raw_text"`
	Summary string `gorm:"type:text" json:"summary"`

	Category  string `gorm:"index;default:other" json:"category"`
	Urgency   string `gorm:"index;default:medium" json:"urgency"`
	County    string `gorm:"index" json:"county"`
	Sentiment string `json:"sentiment"`

	AudioFile string `json:"audio_file,omitempty"`
	ImageFile string `json:"image_file,omitempty"`

	OfficerName    string `json:"officer_name,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`

	AIProcessed   bool       `gorm:"index" json:"ai_processed"`
	IsVerified    bool       `json:"is_verified"`
	TranscribedAt *time.Time `json:"transcribed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates the complaint ID once; it is never reassigned.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.County == "" {
		c.County = CountyUnknown
	}
	if c.Category == "" {
		c.Category = CategoryOther
	}
	if c.Urgency == "" {
		c.Urgency = UrgencyMedium
	}
	return
}

// HasDefaultCategory reports whether the user left the category unset, meaning
// an AI-derived category may overwrite it.
func (c *Complaint) HasDefaultCategory() bool {
	return c.Category == "" || c.Category == CategoryOther
}

func (c *Complaint) HasDefaultUrgency() bool {
	return c.Urgency == "" || c.Urgency == UrgencyMedium
}

func (c *Complaint) HasUnknownCounty() bool {
	return c.County == "" || c.County == CountyUnknown
}
