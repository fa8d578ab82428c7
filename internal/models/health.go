package models

/**
 * Health probe response
 * @property {string} version - Software version
 * @property {string} startTime - Server start time (RFC3339)
 * @property {string} gameDir - Content store root served by this instance
 * @property {string} platform - Target platform, e.g. "linux/x64"
 */
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	StartTime     string `json:"startTime"`
	GameDir       string `json:"gameDir"`
	Platform      string `json:"platform"`
	TotalRequests int64  `json:"totalRequests"`
	ErrorRequests int64  `json:"errorRequests"`
}

// SyncResponse is the API rendering of a SyncResult; only failed items are listed.
type SyncResponse struct {
	OK        bool         `json:"ok"`
	Summary   string       `json:"summary"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	Bytes     int64        `json:"bytes"`
	Cancelled bool         `json:"cancelled,omitempty"`
	Failures  []ItemResult `json:"failures,omitempty"`
}

func NewSyncResponse(r *SyncResult) SyncResponse {
	return SyncResponse{
		OK:        r.Complete(),
		Summary:   r.Summary(),
		Succeeded: r.Succeeded,
		Failed:    r.Failed,
		Skipped:   r.Skipped,
		Bytes:     r.Bytes,
		Cancelled: r.Cancelled,
		Failures:  r.Failures(),
	}
}
