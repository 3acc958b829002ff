package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/wilbur182/linecount/internal/badge"
	"github.com/wilbur182/linecount/internal/markdown"
	"github.com/wilbur182/linecount/internal/styles"
	"github.com/wilbur182/linecount/internal/workspace"
)

// View renders the model.
func (m *Model) View() string {
	var sections []string
	sections = append(sections, m.renderHeader())

	body := m.listHeight()
	switch {
	case !m.enabled():
		sections = append(sections, m.renderMessage("Line counting is disabled (lineCount.enabled = false).", body))
	case m.scanErr != nil && m.report == nil:
		sections = append(sections, m.renderError(body))
	case m.preview:
		sections = append(sections, m.vp.View())
	case m.report == nil:
		sections = append(sections, m.renderMessage("Counting lines...", body))
	default:
		sections = append(sections, m.renderList(body))
	}

	if m.deps.Config.LineCount.ShowStatusBar {
		sections = append(sections, m.renderStatusBar())
	}
	sections = append(sections, m.renderHints())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.NewStyle().MaxWidth(m.width).MaxHeight(m.height).Render(content)
}

func (m *Model) renderHeader() string {
	line := styles.Title.Render("linecount")
	if m.report != nil && m.enabled() {
		s := m.report.Summary
		line += styles.Body.Render(fmt.Sprintf("  %d files, %s lines", s.TotalFiles, badge.Abbreviate(s.TotalLines)))
	}
	if m.scanning {
		line += styles.Muted.Render("  (scanning)")
	}
	line += styles.Muted.Render("  " + m.displayRoot())
	return ansi.Truncate(line, m.width, "…")
}

func (m *Model) renderList(height int) string {
	files := m.files()
	if len(files) == 0 {
		return m.renderMessage("No countable files.", height)
	}

	end := min(len(files), m.offset+height)
	rows := make([]string, 0, height)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderRow(files[i], i == m.cursor))
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

// renderRow lays out the path on the left and the badge flush right.
func (m *Model) renderRow(f workspace.FileEntry, selected bool) string {
	label := badge.Render(f.Result, m.opts)
	labelWidth := ansi.StringWidth(label)

	pathWidth := max(1, m.width-labelWidth-3)
	path := ansi.Truncate(f.Path, pathWidth, "…")
	gap := max(1, m.width-2-ansi.StringWidth(path)-labelWidth)

	if selected {
		return styles.Selected.Render("> "+path+strings.Repeat(" ", gap)) + label
	}
	return styles.Body.Render("  "+path) + strings.Repeat(" ", gap) + label
}

func (m *Model) renderStatusBar() string {
	text := m.status
	if text == "" {
		if f, ok := m.Selected(); ok && m.enabled() {
			text = f.Path + ": " + badge.Tooltip(f.Result)
		} else if m.report != nil && len(m.report.Errors) > 0 {
			text = fmt.Sprintf("%d files could not be read", len(m.report.Errors))
		}
	}
	text = ansi.Truncate(text, max(0, m.width-2), "…")
	return styles.StatusBar.Width(m.width).Render(text)
}

func (m *Model) renderHints() string {
	hints := []string{"j/k move", "r refresh", "p preview", "y copy report", "q quit"}
	if m.preview {
		hints[0] = "esc list"
	}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = styles.KeyHint.Render(h)
	}
	return ansi.Truncate(strings.Join(parts, " "), m.width, "")
}

func (m *Model) renderMessage(text string, height int) string {
	lines := markdown.WrapText(text, max(1, m.width-2))
	for i := range lines {
		lines[i] = styles.Muted.Render("  " + lines[i])
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderError(height int) string {
	lines := markdown.WrapText("Scan failed: "+m.scanErr.Error(), max(1, m.width-2))
	for i := range lines {
		lines[i] = styles.ErrorText.Render("  " + lines[i])
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(lines, "\n"))
}
