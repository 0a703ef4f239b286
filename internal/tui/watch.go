package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/printzz/printzz/models"
)

const barWidth = 30

// FetchFunc lists the caller's pending documents.
type FetchFunc func(ctx context.Context) ([]models.Document, error)

type documentsMsg struct {
	docs []models.Document
	err  error
}

type pollMsg struct{}

// watchModel polls the pending list until the watched document leaves it.
// The agent pops a document only after printing, so disappearance means the
// job finished or was cancelled.
type watchModel struct {
	ctx      context.Context
	docID    string
	fetch    FetchFunc
	interval time.Duration

	spinner spinner.Model
	doc     models.Document
	seen    bool

	finished   bool
	err        error
	quitByUser bool
}

func newWatchModel(ctx context.Context, docID string, fetch FetchFunc, interval time.Duration) watchModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return watchModel{
		ctx:      ctx,
		docID:    docID,
		fetch:    fetch,
		interval: interval,
		spinner:  s,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m watchModel) fetchCmd() tea.Cmd {
	ctx, fetch := m.ctx, m.fetch
	return func() tea.Msg {
		docs, err := fetch(ctx)
		return documentsMsg{docs: docs, err: err}
	}
}

func (m watchModel) pollCmd() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return pollMsg{} })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) || msg.String() == "q" {
			m.quitByUser = true
			return m, tea.Quit
		}
		return m, nil
	case pollMsg:
		return m, m.fetchCmd()
	case documentsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		doc, ok := findDocument(msg.docs, m.docID)
		if !ok {
			if !m.seen {
				m.err = fmt.Errorf("%w: %s", ErrDocumentNotQueued, m.docID)
			}
			m.finished = true
			return m, tea.Quit
		}
		m.doc, m.seen = doc, true
		return m, m.pollCmd()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.err != nil {
		return errorStyle.Render(m.err.Error()) + "\n"
	}
	if m.finished {
		return okStyle.Render("done: "+m.docID) + "\n"
	}
	if !m.seen {
		return m.spinner.View() + " looking up " + m.docID + "\n"
	}

	label := m.doc.Name
	if label == "" {
		label = m.docID
	}
	return fmt.Sprintf("%s %s on %s\n%s %3.0f%%\n%s\n",
		m.spinner.View(), titleStyle.Render(label), m.doc.PrinterID,
		progressBar(m.doc.Progress, barWidth), m.doc.Progress*100,
		helpStyle.Render("q quit"))
}

func progressBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	return barStyle.Render(strings.Repeat("█", filled)) + helpStyle.Render(strings.Repeat("░", width-filled))
}

func findDocument(docs []models.Document, docID string) (models.Document, bool) {
	for _, d := range docs {
		if d.DocID == docID {
			return d, true
		}
	}
	return models.Document{}, false
}
