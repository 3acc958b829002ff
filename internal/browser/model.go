// Package browser is the interactive terminal view: a scrollable file list
// with line count badges that stays current as files change.
package browser

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/linecount/internal/badge"
	"github.com/wilbur182/linecount/internal/config"
	"github.com/wilbur182/linecount/internal/counter"
	"github.com/wilbur182/linecount/internal/export"
	"github.com/wilbur182/linecount/internal/features"
	"github.com/wilbur182/linecount/internal/markdown"
	"github.com/wilbur182/linecount/internal/watcher"
	"github.com/wilbur182/linecount/internal/workspace"
)

const statusTimeout = 2 * time.Second

type (
	scanDoneMsg struct {
		report *workspace.Report
		err    error
	}
	changesMsg struct {
		batch []watcher.Change
	}
	statusMsg      struct{ text string }
	clearStatusMsg struct{ seq int }
)

// Deps are the collaborators a Model needs. Watcher may be nil.
type Deps struct {
	Root     string
	Config   *config.Config
	Counter  *counter.Counter
	Scanner  *workspace.Scanner
	Features *features.Manager
	Renderer *markdown.Renderer
	Watcher  *watcher.Watcher
	Logger   *slog.Logger

	// CopyToClipboard defaults to the system clipboard.
	CopyToClipboard func(string) error
}

// Model is the bubbletea model for the file browser.
type Model struct {
	deps   Deps
	opts   badge.Options
	width  int
	height int

	report   *workspace.Report
	scanErr  error
	scanning bool
	queued   bool
	pending  []string

	cursor int
	offset int

	preview bool
	vp      viewport.Model

	status    string
	statusSeq int
}

// New creates a browser model.
func New(d Deps) *Model {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.CopyToClipboard == nil {
		d.CopyToClipboard = clipboard.WriteAll
	}
	if d.Renderer == nil {
		d.Renderer = markdown.NewRenderer("", d.Logger)
	}
	return &Model{
		deps:   d,
		opts:   badge.FromConfig(d.Config.LineCount),
		width:  80,
		height: 24,
		vp:     viewport.New(80, 20),
	}
}

// Init starts the first scan and the watcher feed.
func (m *Model) Init() tea.Cmd {
	if !m.enabled() {
		return nil
	}
	m.scanning = true
	return tea.Batch(m.scan(), m.listen())
}

func (m *Model) enabled() bool {
	return m.deps.Config.LineCount.Enabled
}

// scan counts the tree in the background. Unchanged files are cache hits.
func (m *Model) scan() tea.Cmd {
	scanner, root := m.deps.Scanner, m.deps.Root
	return func() tea.Msg {
		report, err := scanner.Scan(context.Background(), root)
		return scanDoneMsg{report: report, err: err}
	}
}

// refresh recounts only paths, falling back to a full scan when a
// directory changed.
func (m *Model) refresh(paths []string) tea.Cmd {
	scanner, root, prev := m.deps.Scanner, m.deps.Root, m.report
	return func() tea.Msg {
		ctx := context.Background()
		report, err := scanner.Refresh(ctx, prev, paths)
		if errors.Is(err, workspace.ErrNeedsScan) {
			report, err = scanner.Scan(ctx, root)
		}
		return scanDoneMsg{report: report, err: err}
	}
}

// listen waits for the next batch of file changes.
func (m *Model) listen() tea.Cmd {
	w := m.deps.Watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		batch, ok := <-w.Events()
		if !ok {
			return nil
		}
		return changesMsg{batch: batch}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width, m.vp.Height = msg.Width, m.listHeight()
		if m.preview {
			m.renderPreview()
		}
		m.clampCursor()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case scanDoneMsg:
		return m, m.handleScanDone(msg)

	case changesMsg:
		return m, m.handleChanges(msg.batch)

	case statusMsg:
		return m, m.setStatus(msg.text)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
	}
	return m, nil
}

func (m *Model) handleScanDone(msg scanDoneMsg) tea.Cmd {
	m.scanning = false
	m.scanErr = msg.err
	if msg.err != nil {
		m.deps.Logger.Error("scan failed", "root", m.deps.Root, "err", msg.err)
	} else {
		selected := m.selectedPath()
		m.report = msg.report
		m.restoreCursor(selected)
		if m.preview {
			m.renderPreview()
		}
	}
	if m.queued {
		m.queued = false
		m.pending = nil
		m.scanning = true
		return m.scan()
	}
	if len(m.pending) > 0 && m.report != nil {
		paths := m.pending
		m.pending = nil
		m.scanning = true
		return m.refresh(paths)
	}
	return nil
}

// handleChanges drops cache entries for paths that disappeared and
// recounts only the changed paths.
func (m *Model) handleChanges(batch []watcher.Change) tea.Cmd {
	if !m.enabled() {
		return m.listen()
	}
	paths := make([]string, 0, len(batch))
	for _, c := range batch {
		if c.Op.Gone() {
			m.deps.Counter.InvalidatePrefix(c.Path)
		}
		paths = append(paths, c.Path)
	}
	m.deps.Logger.Debug("file changes", "count", len(batch))
	return tea.Batch(m.requestRefresh(paths), m.listen())
}

// requestRefresh recounts paths, or holds them until the running scan
// finishes so two updates never race on the report.
func (m *Model) requestRefresh(paths []string) tea.Cmd {
	if m.report == nil {
		return m.requestScan()
	}
	if m.scanning {
		m.pending = append(m.pending, paths...)
		return nil
	}
	m.scanning = true
	return m.refresh(paths)
}

func (m *Model) requestScan() tea.Cmd {
	if m.scanning {
		m.queued = true
		return nil
	}
	m.scanning = true
	return m.scan()
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) files() []workspace.FileEntry {
	if m.report == nil {
		return nil
	}
	return m.report.Files
}

func (m *Model) selectedPath() string {
	files := m.files()
	if m.cursor < 0 || m.cursor >= len(files) {
		return ""
	}
	return files[m.cursor].Path
}

// Selected returns the entry under the cursor.
func (m *Model) Selected() (workspace.FileEntry, bool) {
	files := m.files()
	if m.cursor < 0 || m.cursor >= len(files) {
		return workspace.FileEntry{}, false
	}
	return files[m.cursor], true
}

func (m *Model) restoreCursor(path string) {
	if path != "" {
		for i, f := range m.files() {
			if f.Path == path {
				m.cursor = i
				break
			}
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.files())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if h > 0 && m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listHeight is the number of rows left for the list or preview after the
// header, status bar and key hints.
func (m *Model) listHeight() int {
	chrome := 3
	if m.deps.Config.LineCount.ShowStatusBar {
		chrome++
	}
	return max(1, m.height-chrome)
}

// reportMarkdown renders the current report as Markdown.
func (m *Model) reportMarkdown() (string, error) {
	if m.report == nil {
		return "", nil
	}
	var b strings.Builder
	if err := export.Write(&b, export.Markdown, m.report, export.Options{}); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (m *Model) renderPreview() {
	content, err := m.reportMarkdown()
	if err != nil {
		m.deps.Logger.Warn("report render failed", "err", err)
		return
	}
	lines := m.deps.Renderer.RenderContent(content, m.width)
	m.vp.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) displayRoot() string {
	root := m.deps.Root
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return root
}
