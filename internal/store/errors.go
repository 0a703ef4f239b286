package store

import "errors"

// Sentinel errors returned by repositories and blob storages. Callers match
// them with [errors.Is].
var (
	// ErrUsernameAlreadyExists is returned when registration hits the
	// primary key of the credential table.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a lookup by username or user_id
	// matches no record.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSlotOccupied is returned when a printer slot already holds a document.
	ErrSlotOccupied = errors.New("printer slot is occupied")

	// ErrSlotNotFound is returned when a printer slot is empty or holds a
	// different document than the one requested.
	ErrSlotNotFound = errors.New("printer slot is empty")

	// ErrBlobNotFound is returned when a document blob does not exist.
	ErrBlobNotFound = errors.New("blob was not found")

	// ErrInvalidBlobName is returned for names that would escape the
	// storage root.
	ErrInvalidBlobName = errors.New("invalid blob name")
)

// Low-level database operation errors wrapped around driver errors.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)

// Blob storage errors.
var (
	ErrWritingBlob  = errors.New("failed to write blob")
	ErrReadingBlob  = errors.New("failed to read blob")
	ErrDeletingBlob = errors.New("failed to delete blob")
	ErrListingBlobs = errors.New("failed to list blobs")
)
