package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/printzz/printzz/internal/utils"
)

const (
	printerSignatureHeader = "X-Printer-Signature"

	// maxSignedBodySize bounds the JSON body read to find the printer_id.
	maxSignedBodySize = 64 << 10
)

// printerSignature requires X-Printer-Signature to be the hex HMAC-SHA256 of
// the printer_id when a printer key is configured. Without a key, knowing the
// printer_id is enough.
func (h *Handler) printerSignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.printerKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		printerID, err := printerIDFromRequest(r)
		if errors.Is(err, ErrPrinterIDMismatch) {
			h.logger.Warn().Str("func", "*Handler.printerSignature").
				Str("remote_addr", r.RemoteAddr).
				Msg("query and body name different printers")
			writePrinterError(w, r, ErrInvalidPrinterSignature, "*Handler.printerSignature")
			return
		}
		if err != nil {
			writePrinterError(w, r, ErrInvalidJSON, "*Handler.printerSignature")
			return
		}

		signature := r.Header.Get(printerSignatureHeader)
		if printerID == "" || !utils.VerifyHashString(printerID, signature, h.printerKey) {
			h.logger.Warn().Str("func", "*Handler.printerSignature").
				Str("printer_id", printerID).
				Str("remote_addr", r.RemoteAddr).
				Msg("printer signature mismatch")
			writePrinterError(w, r, ErrInvalidPrinterSignature, "*Handler.printerSignature")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// printerIDFromRequest takes the printer_id from the query and, for JSON
// bodies, from the body, which is restored for the next handler. Both must
// agree when both are present.
func printerIDFromRequest(r *http.Request) (string, error) {
	queryID := r.URL.Query().Get("printer_id")
	if r.Body == nil || r.Body == http.NoBody || r.Method == http.MethodGet {
		return queryID, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSignedBodySize))
	if err != nil {
		return "", err
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var req struct {
		PrinterID string `json:"printer_id"`
	}
	if err = json.Unmarshal(body, &req); err != nil {
		return "", err
	}
	return resolvePrinterID(queryID, req.PrinterID)
}

// resolvePrinterID merges the query and body printer_id, either may be empty.
func resolvePrinterID(queryID, bodyID string) (string, error) {
	switch {
	case bodyID == "":
		return queryID, nil
	case queryID == "" || queryID == bodyID:
		return bodyID, nil
	}
	return "", ErrPrinterIDMismatch
}
