package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/printzz/printzz/internal/validators"
	"github.com/printzz/printzz/models"
)

// QueueValidationService rejects malformed queue requests before they reach
// storage.
type QueueValidationService struct {
	inner     QueueService
	validator validators.Validator
}

func NewQueueValidationService() QueueServiceWrapper {
	return &QueueValidationService{
		validator: validators.NewDocumentValidator(),
	}
}

func (v *QueueValidationService) Submit(ctx context.Context, user models.User, req models.SubmitRequest, content io.Reader) (models.Document, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if content == nil {
		return models.Document{}, fmt.Errorf("%w: empty document content", ErrInvalidDataProvided)
	}

	return v.inner.Submit(ctx, user, req, content)
}

func (v *QueueValidationService) Peek(ctx context.Context, printerID string) (models.Document, bool, error) {
	if err := v.validator.Validate(ctx, printerID); err != nil {
		return models.Document{}, false, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Peek(ctx, printerID)
}

func (v *QueueValidationService) Fetch(ctx context.Context, printerID string) (models.Document, io.ReadCloser, error) {
	if err := v.validator.Validate(ctx, printerID); err != nil {
		return models.Document{}, nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Fetch(ctx, printerID)
}

func (v *QueueValidationService) Pop(ctx context.Context, printerID, docID string) error {
	if err := v.validator.Validate(ctx, printerID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	// the legacy pop endpoint carries no doc_id
	if docID != "" {
		if err := v.validateDocID(ctx, docID); err != nil {
			return err
		}
	}

	return v.inner.Pop(ctx, printerID, docID)
}

func (v *QueueValidationService) Cancel(ctx context.Context, user models.User, printerID, docID string) error {
	if printerID != "" {
		if err := v.validator.Validate(ctx, printerID); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
	}
	if err := v.validateDocID(ctx, docID); err != nil {
		return err
	}

	return v.inner.Cancel(ctx, user, printerID, docID)
}

func (v *QueueValidationService) List(ctx context.Context, user models.User) ([]models.Document, error) {
	if user.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidDataProvided)
	}

	return v.inner.List(ctx, user)
}

func (v *QueueValidationService) SetProgress(ctx context.Context, req models.ProgressRequest) error {
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.SetProgress(ctx, req)
}

func (v *QueueValidationService) Sweep(ctx context.Context, grace time.Duration) (models.SweepResult, error) {
	if grace < 0 {
		return models.SweepResult{}, fmt.Errorf("%w: negative grace period", ErrInvalidDataProvided)
	}

	return v.inner.Sweep(ctx, grace)
}

func (v *QueueValidationService) Wrap(inner QueueService) QueueService {
	v.inner = inner
	return v
}

func (v *QueueValidationService) validateDocID(ctx context.Context, docID string) error {
	err := v.validator.Validate(ctx, models.ProgressRequest{DocID: docID}, validators.FieldDocID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}
