package models

import "time"

// ComplaintEvent is the payload published to the live dashboard feed whenever
// a complaint is created or enriched.
type ComplaintEvent struct {
	ComplaintID string    `json:"complaint_id"`
	Kind        string    `json:"kind"` // "created", "enriched"
	Category    string    `json:"category"`
	Urgency     string    `json:"urgency"`
	County      string    `json:"county"`
	Summary     string    `json:"summary,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DashboardStats is the aggregated snapshot served to the public dashboard.
type DashboardStats struct {
	Total       int64         `json:"total"`
	Today       int64         `json:"today"`
	Unprocessed int64         `json:"unprocessed"`
	ByCategory  []BucketCount `json:"by_category"`
	ByCounty    []BucketCount `json:"by_county"`
	ByUrgency   []BucketCount `json:"by_urgency"`
	Trend       []DateCount   `json:"trend"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// BucketCount is one row of a grouped count (category, county or urgency).
type BucketCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// DateCount is one day of the 7-day submission trend.
type DateCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
