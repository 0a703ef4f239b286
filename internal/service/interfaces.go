package service

import (
	"context"
	"io"
	"time"

	"github.com/printzz/printzz/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service.go -package=mock

// AuthService owns credentials and the tokens derived from them.
type AuthService interface {
	// RegisterUser stores new credentials and returns the identity with a
	// freshly generated user_id.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login verifies credentials. Unknown usernames and wrong passwords both
	// yield ErrInvalidCredentials.
	Login(ctx context.Context, user models.User) (models.User, error)

	// ResolveUser maps a user_id back to the identity.
	ResolveUser(ctx context.Context, userID string) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// QueueService manages the single-document slot of every printer.
type QueueService interface {
	// Submit stores content and occupies the printer slot.
	// Returns ErrQueueBusy when the slot already holds a document.
	Submit(ctx context.Context, user models.User, req models.SubmitRequest, content io.Reader) (models.Document, error)

	// Peek returns the pending document; ok is false for an empty slot.
	Peek(ctx context.Context, printerID string) (doc models.Document, ok bool, err error)

	// Fetch returns the pending document and its content. The reader must be
	// closed; the slot cannot be popped or cancelled until it is.
	Fetch(ctx context.Context, printerID string) (models.Document, io.ReadCloser, error)

	// Pop removes the pending document. A non-empty docID must match it.
	Pop(ctx context.Context, printerID, docID string) error

	// Cancel removes a pending document on behalf of its owner. printerID
	// may be empty, in which case the document is looked up by docID.
	Cancel(ctx context.Context, user models.User, printerID, docID string) error

	// List returns the user's pending documents.
	List(ctx context.Context, user models.User) ([]models.Document, error)

	// SetProgress records agent-reported progress of the pending document.
	SetProgress(ctx context.Context, req models.ProgressRequest) error

	// Sweep deletes blobs without a slot that are older than grace.
	Sweep(ctx context.Context, grace time.Duration) (models.SweepResult, error)
}

// AppInfoService reports build metadata of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.VersionResponse
}

// QueueServiceWrapper decorates a QueueService with extra behaviour such as
// validation or metrics.
type QueueServiceWrapper interface {
	Wrap(QueueService) QueueService
}

// IDGenerator issues unique identifiers for users and documents.
type IDGenerator interface {
	Generate() string
}
