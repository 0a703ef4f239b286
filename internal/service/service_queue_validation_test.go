package service

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/printzz/printzz/internal/mock"
	"github.com/printzz/printzz/internal/validators"
	"github.com/printzz/printzz/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const validDocID = "77777777-7777-4777-8777-777777777777"

func newValidatedQueue(t *testing.T) (QueueService, *mock.MockQueueService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	inner := mock.NewMockQueueService(ctrl)
	return NewQueueValidationService().Wrap(inner), inner
}

func TestQueueValidation_Submit(t *testing.T) {
	tests := []struct {
		name    string
		req     models.SubmitRequest
		wantErr error
	}{
		{
			name:    "bad printer id",
			req:     models.SubmitRequest{PrinterID: "lab 1", FileName: "a.pdf", Settings: models.DefaultPrintSettings()},
			wantErr: validators.ErrInvalidPrinterID,
		},
		{
			name:    "missing file name",
			req:     models.SubmitRequest{PrinterID: "lab-1", FileName: "", Settings: models.DefaultPrintSettings()},
			wantErr: validators.ErrInvalidFileName,
		},
		{
			name:    "file name longer than the name column",
			req:     models.SubmitRequest{PrinterID: "lab-1", FileName: strings.Repeat("a", 256) + ".pdf", Settings: models.DefaultPrintSettings()},
			wantErr: validators.ErrInvalidFileName,
		},
		{
			name:    "zero copies",
			req:     models.SubmitRequest{PrinterID: "lab-1", FileName: "a.pdf", Settings: models.PrintSettings{Copies: 0}},
			wantErr: validators.ErrInvalidCopies,
		},
		{
			name:    "unknown duplex mode",
			req:     models.SubmitRequest{PrinterID: "lab-1", FileName: "a.pdf", Settings: models.PrintSettings{Copies: 1, DoubleSided: 7}},
			wantErr: validators.ErrInvalidDoubleSided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newValidatedQueue(t)

			_, err := svc.Submit(context.Background(), alice, tt.req, strings.NewReader("x"))
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestQueueValidation_Submit_PassesValidRequest(t *testing.T) {
	svc, inner := newValidatedQueue(t)
	req := submitRequest("lab-1")

	inner.EXPECT().Submit(gomock.Any(), alice, req, gomock.Any()).Return(models.Document{DocID: validDocID}, nil)

	doc, err := svc.Submit(context.Background(), alice, req, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, validDocID, doc.DocID)
}

func TestQueueValidation_Submit_NilContent(t *testing.T) {
	svc, _ := newValidatedQueue(t)

	_, err := svc.Submit(context.Background(), alice, submitRequest("lab-1"), nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestQueueValidation_PrinterRoutes(t *testing.T) {
	svc, inner := newValidatedQueue(t)
	ctx := context.Background()

	_, _, err := svc.Peek(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	_, _, err = svc.Fetch(ctx, "../etc")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, svc.Pop(ctx, "lab-1", "not-a-uuid"), ErrInvalidDataProvided)

	inner.EXPECT().Pop(gomock.Any(), "lab-1", "").Return(nil)
	assert.NoError(t, svc.Pop(ctx, "lab-1", ""))
}

func TestQueueValidation_Cancel(t *testing.T) {
	svc, inner := newValidatedQueue(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Cancel(ctx, alice, "", ""), ErrInvalidDataProvided)
	assert.ErrorIs(t, svc.Cancel(ctx, alice, "bad printer", validDocID), ErrInvalidDataProvided)

	inner.EXPECT().Cancel(gomock.Any(), alice, "", validDocID).Return(nil)
	assert.NoError(t, svc.Cancel(ctx, alice, "", validDocID))
}

func TestQueueValidation_SetProgress(t *testing.T) {
	svc, inner := newValidatedQueue(t)
	ctx := context.Background()

	for _, progress := range []float64{-0.1, 1.5, math.NaN()} {
		err := svc.SetProgress(ctx, models.ProgressRequest{PrinterID: "lab-1", DocID: validDocID, Progress: progress})
		assert.ErrorIs(t, err, ErrInvalidDataProvided, "progress %v", progress)
	}

	req := models.ProgressRequest{PrinterID: "lab-1", DocID: validDocID, Progress: 1}
	inner.EXPECT().SetProgress(gomock.Any(), req).Return(nil)
	assert.NoError(t, svc.SetProgress(ctx, req))
}

func TestQueueValidation_ListAndSweep(t *testing.T) {
	svc, inner := newValidatedQueue(t)
	ctx := context.Background()

	_, err := svc.List(ctx, models.User{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Sweep(ctx, -time.Second)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	inner.EXPECT().Sweep(gomock.Any(), time.Hour).Return(models.SweepResult{Removed: 2}, nil)
	result, err := svc.Sweep(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Removed)
}
