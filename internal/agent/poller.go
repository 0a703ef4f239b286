// Package agent implements the printer-side poller: it asks the server for
// the pending document of one printer, downloads it, prints it and
// acknowledges it with a pop.
package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/printzz/printzz/internal/adapter"
	"github.com/printzz/printzz/internal/config"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/metrics"
	"github.com/printzz/printzz/internal/printer"
	"github.com/printzz/printzz/internal/workers"
	"github.com/printzz/printzz/models"
)

// Cycle outcomes, used as the metrics label.
const (
	OutcomeIdle      = "idle"
	OutcomePrinted   = "printed"
	OutcomePopFailed = "pop_failed"
	OutcomeError     = "error"
)

const workFilePrefix = "print"

// ErrDocumentChanged is returned when the downloaded document is not the one
// the settings described.
var ErrDocumentChanged = errors.New("pending document changed")

// Poller drains one printer queue at a fixed interval.
type Poller struct {
	server  adapter.ServerAdapter
	printer printer.Printer

	printerID    string
	interval     time.Duration
	stageTimeout time.Duration
	workDir      string

	// printed is the doc_id that was printed but whose pop failed. It is
	// not printed again, only popped.
	printed string

	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewPoller(server adapter.ServerAdapter, p printer.Printer, cfg config.AgentSettings, m *metrics.Metrics, logger *logger.Logger) *Poller {
	return &Poller{
		server:       server,
		printer:      p,
		printerID:    cfg.PrinterID,
		interval:     cfg.RefreshInterval,
		stageTimeout: cfg.StageTimeout,
		workDir:      cfg.WorkDir,
		metrics:      m,
		logger:       logger.ForPrinter(cfg.PrinterID),
	}
}

// Run removes leftovers of a previous run and polls until ctx is cancelled.
// Cycle failures are logged; they never stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	if err := os.MkdirAll(p.workDir, 0o750); err != nil {
		return fmt.Errorf("error creating work dir: %w", err)
	}
	p.cleanup()

	p.logger.Info().Dur("interval", p.interval).Msg("poller started")

	return workers.Every(p.interval, func(ctx context.Context) error {
		outcome, err := p.Cycle(ctx)
		if p.metrics != nil {
			p.metrics.RecordAgentCycle(outcome)
		}
		return err
	}, func(err error) {
		p.logger.Err(err).Str("func", "*Poller.Run").Msg("poll cycle failed")
	}).Run(ctx)
}

// Cycle runs one settings, download, print, pop round.
func (p *Poller) Cycle(ctx context.Context) (string, error) {
	doc, ok, err := p.settings(ctx)
	if err != nil {
		return OutcomeError, fmt.Errorf("error getting settings: %w", err)
	}
	if !ok {
		p.printed = ""
		return OutcomeIdle, nil
	}

	log := p.logger.With().Str("doc_id", doc.DocID).Logger()

	if doc.DocID != "" && doc.DocID == p.printed {
		log.Warn().Msg("document already printed, retrying pop")
		return p.pop(ctx, doc), nil
	}

	path := p.workFile(doc.Extension)
	defer p.cleanup()

	info, err := p.download(ctx, path)
	if err != nil {
		return OutcomeError, fmt.Errorf("error downloading document: %w", err)
	}
	if info.DocID != doc.DocID {
		// the slot changed between settings and download; the bytes belong
		// to another job with other settings
		log.Warn().Str("downloaded_doc_id", info.DocID).Msg("pending document changed, skipping cycle")
		return OutcomeError, fmt.Errorf("%w: expected %s, got %q", ErrDocumentChanged, doc.DocID, info.DocID)
	}
	p.reportProgress(ctx, doc, 0.5)

	stageCtx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	err = p.printer.Print(stageCtx, path, doc.Settings)
	cancel()
	if err != nil {
		return OutcomeError, fmt.Errorf("error printing document: %w", err)
	}
	log.Info().Str("doc_name", doc.Name).Int("copies", doc.Settings.Copies).Msg("document printed")

	p.printed = doc.DocID
	p.reportProgress(ctx, doc, 1)

	return p.pop(ctx, doc), nil
}

func (p *Poller) settings(ctx context.Context) (models.Document, bool, error) {
	stageCtx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()
	return p.server.GetSettings(stageCtx, p.printerID)
}

func (p *Poller) download(ctx context.Context, path string) (models.DownloadInfo, error) {
	stageCtx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o640)
	if err != nil {
		return models.DownloadInfo{}, err
	}

	info, err := p.server.Download(stageCtx, p.printerID, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return models.DownloadInfo{}, err
	}

	p.logger.Debug().Str("file", path).Str("doc_id", info.DocID).Int64("size", info.Size).Msg("document downloaded")
	return info, nil
}

// pop acknowledges doc. A failure is logged and the document is retried on
// the next cycle.
func (p *Poller) pop(ctx context.Context, doc models.Document) string {
	stageCtx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	err := p.server.Pop(stageCtx, p.printerID, doc.DocID)
	switch {
	case err == nil:
		p.printed = ""
		return OutcomePrinted
	case errors.Is(err, adapter.ErrNotFound):
		// cancelled or popped elsewhere in the meantime
		p.printed = ""
		p.logger.Warn().Err(err).Str("doc_id", doc.DocID).Msg("document was gone on pop")
		return OutcomePrinted
	default:
		p.logger.Err(err).Str("func", "*Poller.pop").Str("doc_id", doc.DocID).Msg("error popping document")
		return OutcomePopFailed
	}
}

func (p *Poller) reportProgress(ctx context.Context, doc models.Document, progress float64) {
	stageCtx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	err := p.server.ReportProgress(stageCtx, models.ProgressRequest{
		PrinterID: p.printerID,
		DocID:     doc.DocID,
		Progress:  progress,
	})
	if err != nil {
		p.logger.Debug().Err(err).Str("doc_id", doc.DocID).Float64("progress", progress).Msg("error reporting progress")
	}
}

func (p *Poller) workFile(ext string) string {
	if ext == "" {
		ext = "bin"
	}
	return filepath.Join(p.workDir, workFilePrefix+"."+ext)
}

// cleanup removes every print.* file from the work dir.
func (p *Poller) cleanup() {
	matches, err := filepath.Glob(filepath.Join(p.workDir, workFilePrefix+".*"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if err = os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			p.logger.Warn().Err(err).Str("file", m).Msg("error removing work file")
		}
	}
}
