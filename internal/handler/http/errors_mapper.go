package http

import (
	"errors"
	"net/http"

	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/service"
	"github.com/printzz/printzz/internal/utils"
	"github.com/printzz/printzz/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	ErrInvalidJSON:                 http.StatusBadRequest,
	ErrMissingFile:                 http.StatusBadRequest,
	ErrInvalidFormValue:            http.StatusBadRequest,
	ErrMissingPrinterID:            http.StatusBadRequest,
	ErrPrinterIDMismatch:           http.StatusBadRequest,

	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrUserNotFound:            http.StatusUnauthorized,
	ErrEmptyAuthorizationHeader:        http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader:      http.StatusUnauthorized,
	ErrInvalidPrinterSignature:         http.StatusUnauthorized,

	service.ErrForbidden: http.StatusForbidden,

	service.ErrSlotEmpty:        http.StatusNotFound,
	service.ErrDocumentNotFound: http.StatusNotFound,

	service.ErrUserAlreadyExists: http.StatusConflict,
	service.ErrQueueBusy:         http.StatusConflict,

	ErrUploadTooLarge: http.StatusRequestEntityTooLarge,

	service.ErrStorageFailure:      http.StatusInternalServerError,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// publicMessage hides internal details of server-side failures.
func publicMessage(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}

// writeError answers a user-facing route with a plain-text error.
func writeError(w http.ResponseWriter, r *http.Request, err error, funcName string) {
	status := statusFromError(err)
	logError(r, err, funcName, status)
	http.Error(w, publicMessage(err, status), status)
}

// writePrinterError answers a printer route with the status envelope the
// agents expect.
func writePrinterError(w http.ResponseWriter, r *http.Request, err error, funcName string) {
	status := statusFromError(err)
	logError(r, err, funcName, status)
	utils.WriteJSON(w, models.StatusResponse{Status: false, Error: publicMessage(err, status)}, status)
}

func logError(r *http.Request, err error, funcName string, status int) {
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")
		return
	}
	log.Debug().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
}
