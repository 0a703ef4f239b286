// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/utils"
	"github.com/printzz/printzz/models"
)

// Response headers describing a downloaded document.
const (
	headerDocID = models.HeaderDocID
	headerExt   = models.HeaderDocExt
)

func (h *Handler) printerSettings(w http.ResponseWriter, r *http.Request) {
	printerID, ok := printerIDFromQuery(w, r)
	if !ok {
		return
	}

	doc, found, err := h.services.QueueService.Peek(r.Context(), printerID)
	if err != nil {
		writePrinterError(w, r, err, "*Handler.printerSettings")
		return
	}
	if !found {
		utils.WriteJSON(w, models.StatusResponse{Status: false}, http.StatusOK)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: true, Data: &doc}, http.StatusOK)
}

func (h *Handler) printerDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	printerID, ok := printerIDFromQuery(w, r)
	if !ok {
		return
	}

	doc, content, err := h.services.QueueService.Fetch(r.Context(), printerID)
	if err != nil {
		writePrinterError(w, r, err, "*Handler.printerDocument")
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": models.BlobName(doc.Name, doc.Extension),
	}))
	w.Header().Set(headerDocID, doc.DocID)
	w.Header().Set(headerExt, doc.Extension)
	if doc.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(doc.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	n, err := io.Copy(w, content)
	if err != nil {
		// headers are gone, the agent sees a short body
		log.Err(err).Str("func", "*Handler.printerDocument").Int64("written", n).Msg("error streaming document")
		return
	}
	log.Debug().Str("doc_id", doc.DocID).Int64("size", n).Msg("document downloaded")
}

func (h *Handler) printerPop(w http.ResponseWriter, r *http.Request) {
	printerID, ok := printerIDFromQuery(w, r)
	if !ok {
		return
	}
	docID := r.URL.Query().Get("doc_id")

	if err := h.services.QueueService.Pop(r.Context(), printerID, docID); err != nil {
		writePrinterError(w, r, err, "*Handler.printerPop")
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: true}, http.StatusOK)
}

func (h *Handler) printerProgress(w http.ResponseWriter, r *http.Request) {
	var req models.ProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePrinterError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "*Handler.printerProgress")
		return
	}

	printerID, err := resolvePrinterID(r.URL.Query().Get("printer_id"), req.PrinterID)
	if err != nil {
		writePrinterError(w, r, err, "*Handler.printerProgress")
		return
	}
	req.PrinterID = printerID

	if err := h.services.QueueService.SetProgress(r.Context(), req); err != nil {
		writePrinterError(w, r, err, "*Handler.printerProgress")
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: true}, http.StatusOK)
}

func printerIDFromQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	printerID := r.URL.Query().Get("printer_id")
	if printerID == "" {
		writePrinterError(w, r, ErrMissingPrinterID, "printerIDFromQuery")
		return "", false
	}
	return printerID, true
}
