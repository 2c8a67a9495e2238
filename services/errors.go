package services

import "fmt"

// ExtractionError wraps an upstream metadata fetch failure. The upstream
// message is preserved so the client sees what the backend reported.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("Failed to get video info: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// DownloadError wraps a stream or subprocess failure during download
type DownloadError struct {
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("Download failed: %v", e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// RestrictedEnvError is returned when a request needs capabilities the
// current deployment does not have (non-YouTube URL on the serverless backend)
type RestrictedEnvError struct {
	Message string
}

func (e *RestrictedEnvError) Error() string { return e.Message }
