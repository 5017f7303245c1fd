package ai

import "fmt"

// TranscriptionError reports a failed transcription attempt (unreadable file,
// remote error). Callers treat it as non-fatal to the submission flow.
type TranscriptionError struct {
	Path string
	Err  error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed for %s: %v", e.Path, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// AnalysisParseError reports that the model response could not be parsed as
// the expected JSON object.
type AnalysisParseError struct {
	Raw string
	Err error
}

func (e *AnalysisParseError) Error() string {
	return fmt.Sprintf("analysis response not parseable: %v", e.Err)
}

func (e *AnalysisParseError) Unwrap() error { return e.Err }

// AnalysisServiceError reports that the remote call itself failed (network,
// auth, quota).
type AnalysisServiceError struct {
	StatusCode int
	Err        error
}

func (e *AnalysisServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("analysis service error (http %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("analysis service error: %v", e.Err)
}

func (e *AnalysisServiceError) Unwrap() error { return e.Err }

// ConfigurationError means the client cannot be constructed at all, e.g. a
// missing credential. It fails the whole run before any per-item work.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("ai client not configured: missing %s", e.Missing)
}
