package service

import "errors"

var (
	// ErrInvalidDataProvided wraps every validation failure.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrQueueBusy is returned by Submit when the printer already has a
	// pending document.
	ErrQueueBusy = errors.New("printer queue is busy")

	// ErrSlotEmpty is returned when a printer has no pending document.
	ErrSlotEmpty = errors.New("printer queue is empty")

	// ErrDocumentNotFound is returned when the named document is not the
	// one pending on the printer.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrForbidden is returned when a user acts on another user's document.
	ErrForbidden = errors.New("document belongs to another user")

	// ErrStorageFailure wraps unexpected database, blob or lock errors.
	ErrStorageFailure = errors.New("storage failure")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
