package models

// StatusResponse is the envelope returned by the printer-facing endpoints.
// Status=false on the settings endpoint means the printer slot is empty.
type StatusResponse struct {
	Status bool      `json:"status"`
	Data   *Document `json:"data,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// SubmitResponse is returned after a document was queued.
type SubmitResponse struct {
	DocID string `json:"doc_id"`
}

// DocumentsResponse lists the caller's pending documents.
type DocumentsResponse struct {
	Documents []Document `json:"documents"`
	Length    int        `json:"length"`
}

// VersionResponse describes the running server build.
type VersionResponse struct {
	Version     string `json:"version"`
	BuildDate   string `json:"build_date"`
	BuildCommit string `json:"build_commit"`
}

// SweepResult summarizes one janitor pass over the blob storage.
type SweepResult struct {
	// Removed is the number of orphan blobs deleted.
	Removed int
	// Pending is the number of occupied slots seen during the pass.
	Pending int
}
