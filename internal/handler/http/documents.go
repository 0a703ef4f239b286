package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/utils"
	"github.com/printzz/printzz/models"
)

// multipartMemory is how much of an upload is kept in memory before the
// rest is spooled to a temporary file.
const multipartMemory = 8 << 20

// multipartOverhead leaves room for boundaries and the settings fields.
const multipartOverhead = 64 << 10

func (h *Handler) submitDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader, "*Handler.submitDocument")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, ErrUploadTooLarge, "*Handler.submitDocument")
			return
		}
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidFormValue, err), "*Handler.submitDocument")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrMissingFile, err), "*Handler.submitDocument")
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		writeError(w, r, ErrUploadTooLarge, "*Handler.submitDocument")
		return
	}

	settings, err := parseSettings(r)
	if err != nil {
		writeError(w, r, err, "*Handler.submitDocument")
		return
	}

	req := models.SubmitRequest{
		PrinterID: r.FormValue("printer_id"),
		FileName:  header.Filename,
		Settings:  settings,
	}

	doc, err := h.services.QueueService.Submit(ctx, user, req, file)
	if err != nil {
		writeError(w, r, err, "*Handler.submitDocument")
		return
	}

	log.Debug().Str("doc_id", doc.DocID).Str("printer_id", doc.PrinterID).Msg("document submitted")
	utils.WriteJSON(w, models.SubmitResponse{DocID: doc.DocID}, http.StatusCreated)
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader, "*Handler.listDocuments")
		return
	}

	docs, err := h.services.QueueService.List(r.Context(), user)
	if err != nil {
		writeError(w, r, err, "*Handler.listDocuments")
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}

	utils.WriteJSON(w, models.DocumentsResponse{Documents: docs, Length: len(docs)}, http.StatusOK)
}

func (h *Handler) cancelDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader, "*Handler.cancelDocument")
		return
	}

	docID := chi.URLParam(r, "doc_id")
	printerID := r.URL.Query().Get("printer_id")

	if err := h.services.QueueService.Cancel(r.Context(), user, printerID, docID); err != nil {
		writeError(w, r, err, "*Handler.cancelDocument")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseSettings reads copies, double_sided and color from the form. Missing
// fields take the defaults of one single-sided color copy.
func parseSettings(r *http.Request) (models.PrintSettings, error) {
	settings := models.DefaultPrintSettings()

	if v := strings.TrimSpace(r.FormValue("copies")); v != "" {
		copies, err := strconv.Atoi(v)
		if err != nil {
			return settings, fmt.Errorf("%w: copies: %w", ErrInvalidFormValue, err)
		}
		settings.Copies = copies
	}

	if v := r.FormValue("double_sided"); v != "" {
		mode, err := models.ParseDoubleSided(v)
		if err != nil {
			return settings, fmt.Errorf("%w: %w", ErrInvalidFormValue, err)
		}
		settings.DoubleSided = mode
	}

	if v := strings.TrimSpace(r.FormValue("color")); v != "" {
		color, err := strconv.ParseBool(v)
		if err != nil {
			return settings, fmt.Errorf("%w: color: %w", ErrInvalidFormValue, err)
		}
		settings.Color = color
	}

	return settings, nil
}
