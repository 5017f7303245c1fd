// Package config holds the fixed operational limits and defaults shared by the
// HTTP API and the admin CLI.
package config

import "time"

const (
	// Uploads
	MaxAudioUploadBytes = 10 * 1024 * 1024
	MaxImageUploadBytes = 5 * 1024 * 1024
	MaxAudioDuration    = 60 * time.Second
	UploadDir           = "uploads"

	// Batch processing
	DefaultBatchLimit = 10

	// AI
	DefaultTranscribeModel = "whisper-1"
	DefaultAnalysisModel   = "gpt-4o-mini"
	DefaultAudioLanguage   = "en" // "sw" supported for Swahili submissions
	AITimeout              = 60 * time.Second

	// Dashboard
	StatsCacheTTL    = 30 * time.Second
	LiveFeedChannel  = "complaints:feed"
	RecentFeedLimit  = 20
	TopCountiesLimit = 10

	// Submission rewards
	AccountabilityPointPerComplaint = 1
)
