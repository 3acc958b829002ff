package browser

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/linecount/internal/features"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.manualRefresh()
	case "p":
		return m, m.togglePreview()
	case "y":
		return m, m.copyReport()
	}

	if m.preview {
		return m.handlePreviewKey(msg)
	}
	m.handleListKey(key)
	return m, nil
}

func (m *Model) handleListKey(key string) {
	page := m.listHeight()
	switch key {
	case "j", "down":
		m.cursor++
	case "k", "up":
		m.cursor--
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.files()) - 1
	case "ctrl+d":
		m.cursor += page / 2
	case "ctrl+u":
		m.cursor -= page / 2
	case "ctrl+f", "pgdown":
		m.cursor += page
	case "ctrl+b", "pgup":
		m.cursor -= page
	}
	m.clampCursor()
}

func (m *Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.preview = false
		return m, nil
	case "g", "home":
		m.vp.GotoTop()
		return m, nil
	case "G", "end":
		m.vp.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// manualRefresh clears every cached count and rescans.
func (m *Model) manualRefresh() tea.Cmd {
	if !m.enabled() {
		return m.setStatus("Line counting is disabled")
	}
	m.deps.Counter.Clear()
	m.deps.Logger.Debug("manual refresh", "root", m.deps.Root)
	return tea.Batch(m.requestScan(), m.setStatus("Refreshing..."))
}

func (m *Model) togglePreview() tea.Cmd {
	if !m.deps.Features.IsEnabled(features.ReportPreview) {
		return m.setStatus("Report preview is disabled (" + features.ReportPreview.Name + ")")
	}
	if m.report == nil {
		return m.setStatus("No report yet")
	}
	m.preview = !m.preview
	if m.preview {
		m.vp.Width, m.vp.Height = m.width, m.listHeight()
		m.renderPreview()
		m.vp.GotoTop()
	}
	return nil
}

// copyReport puts the Markdown report on the clipboard.
func (m *Model) copyReport() tea.Cmd {
	content, err := m.reportMarkdown()
	if err != nil || content == "" {
		return m.setStatus("No report to copy")
	}
	copyFn := m.deps.CopyToClipboard
	return func() tea.Msg {
		if err := copyFn(content); err != nil {
			return statusMsg{text: "Failed to copy report"}
		}
		return statusMsg{text: "Copied report to clipboard"}
	}
}
