package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/printzz/printzz/internal/metrics"
	"github.com/printzz/printzz/models"
)

// QueueMetricsService counts queue operations and tracks the number of
// occupied slots.
type QueueMetricsService struct {
	inner   QueueService
	metrics *metrics.Metrics
}

func NewQueueMetricsService(m *metrics.Metrics) QueueServiceWrapper {
	return &QueueMetricsService{metrics: m}
}

func (s *QueueMetricsService) Submit(ctx context.Context, user models.User, req models.SubmitRequest, content io.Reader) (models.Document, error) {
	doc, err := s.inner.Submit(ctx, user, req, content)
	s.record("submit", err)
	if err == nil {
		s.metrics.PendingSlots.Inc()
		s.metrics.BlobBytesTotal.Add(float64(doc.Size))
	}
	return doc, err
}

func (s *QueueMetricsService) Peek(ctx context.Context, printerID string) (models.Document, bool, error) {
	doc, ok, err := s.inner.Peek(ctx, printerID)
	if err == nil && !ok {
		s.metrics.RecordQueueOperation("peek", metrics.ResultEmpty)
	} else {
		s.record("peek", err)
	}
	return doc, ok, err
}

func (s *QueueMetricsService) Fetch(ctx context.Context, printerID string) (models.Document, io.ReadCloser, error) {
	doc, content, err := s.inner.Fetch(ctx, printerID)
	s.record("fetch", err)
	return doc, content, err
}

func (s *QueueMetricsService) Pop(ctx context.Context, printerID, docID string) error {
	err := s.inner.Pop(ctx, printerID, docID)
	s.record("pop", err)
	if err == nil {
		s.metrics.PendingSlots.Dec()
	}
	return err
}

func (s *QueueMetricsService) Cancel(ctx context.Context, user models.User, printerID, docID string) error {
	err := s.inner.Cancel(ctx, user, printerID, docID)
	s.record("cancel", err)
	if err == nil {
		s.metrics.PendingSlots.Dec()
	}
	return err
}

func (s *QueueMetricsService) List(ctx context.Context, user models.User) ([]models.Document, error) {
	docs, err := s.inner.List(ctx, user)
	s.record("list", err)
	return docs, err
}

func (s *QueueMetricsService) SetProgress(ctx context.Context, req models.ProgressRequest) error {
	err := s.inner.SetProgress(ctx, req)
	s.record("progress", err)
	return err
}

// Sweep also resets the pending gauge, which otherwise starts at zero after
// a restart.
func (s *QueueMetricsService) Sweep(ctx context.Context, grace time.Duration) (models.SweepResult, error) {
	result, err := s.inner.Sweep(ctx, grace)
	s.record("sweep", err)
	if err == nil {
		s.metrics.PendingSlots.Set(float64(result.Pending))
		s.metrics.JanitorRemovedTotal.Add(float64(result.Removed))
	}
	return result, err
}

func (s *QueueMetricsService) Wrap(inner QueueService) QueueService {
	s.inner = inner
	return s
}

func (s *QueueMetricsService) record(op string, err error) {
	s.metrics.RecordQueueOperation(op, resultLabel(err))
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrQueueBusy):
		return metrics.ResultBusy
	case errors.Is(err, ErrSlotEmpty):
		return metrics.ResultEmpty
	default:
		return metrics.ResultError
	}
}
