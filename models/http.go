package models

// ProgressRequest is sent by a printer agent to report job progress.
type ProgressRequest struct {
	PrinterID string  `json:"printer_id"`
	DocID     string  `json:"doc_id"`
	Progress  float64 `json:"progress"`
}

// Headers describing the document streamed by the printer download route.
const (
	HeaderDocID  = "X-Doc-ID"
	HeaderDocExt = "X-Doc-Ext"
)

// DownloadInfo describes a downloaded document as announced by the server.
type DownloadInfo struct {
	DocID     string
	Extension string
	// Size is the number of bytes written.
	Size int64
}

// SubmitRequest carries everything needed to queue one document.
// Content is streamed separately.
type SubmitRequest struct {
	PrinterID string
	FileName  string
	Settings  PrintSettings
}
