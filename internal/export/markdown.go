package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/wilbur182/linecount/internal/workspace"
)

func writeMarkdown(w io.Writer, r *workspace.Report, opts Options) error {
	var b strings.Builder
	s := r.Summary

	b.WriteString("# Line Count Report\n\n")
	fmt.Fprintf(&b, "- Root: `%s`\n", r.Root)
	if !r.TakenAt.IsZero() {
		fmt.Fprintf(&b, "- Taken: %s\n", r.TakenAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "- Files: %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "- Lines: %d (code %d, comments %d, blank %d)\n",
		s.TotalLines, s.TotalCode, s.TotalComments, s.TotalBlank)
	if d := opts.Delta; d != nil {
		fmt.Fprintf(&b, "- Change since %s: %s files, %s lines, %s code\n",
			d.Since.Format("2006-01-02 15:04"), signed(d.Files), signed(d.Lines), signed(d.Code))
	}
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "- Unreadable: %d\n", len(r.Errors))
	}

	b.WriteString("\n## By Extension\n\n")
	writeGroups(&b, "Extension", workspace.Sorted(s.ByExtension))

	b.WriteString("\n## By Language\n\n")
	writeGroups(&b, "Language", workspace.Sorted(s.ByLanguage))

	b.WriteString("\n## Files\n\n")
	t := newTable("Path", "Lines", "Code", "Comments", "Blank")
	t.alignRight(1, 2, 3, 4)
	for _, f := range r.Files {
		lines := strconv.Itoa(f.Lines)
		if f.Estimated {
			lines = "~" + lines
		}
		t.add(escapeCell(f.Path), lines, strconv.Itoa(f.Code), strconv.Itoa(f.Comments), strconv.Itoa(f.Blank))
	}
	t.render(&b)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeGroups(b *strings.Builder, label string, groups []workspace.Group) {
	t := newTable(label, "Files", "Lines")
	t.alignRight(1, 2)
	for _, g := range groups {
		t.add(escapeCell(g.Name), strconv.Itoa(g.Files), strconv.Itoa(g.Lines))
	}
	t.render(b)
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// table is a Markdown table whose columns are padded to the widest cell,
// measured in terminal cells so CJK paths line up.
type table struct {
	header []string
	rows   [][]string
	right  map[int]bool
}

func newTable(header ...string) *table {
	return &table{header: header, right: make(map[int]bool)}
}

func (t *table) alignRight(cols ...int) {
	for _, c := range cols {
		t.right[c] = true
	}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(b *strings.Builder) {
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = max(3, runewidth.StringWidth(h))
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	t.line(b, t.header, widths)
	b.WriteString("|")
	for i, w := range widths {
		if t.right[i] {
			b.WriteString(" " + strings.Repeat("-", w-1) + ": |")
		} else {
			b.WriteString(" " + strings.Repeat("-", w) + " |")
		}
	}
	b.WriteString("\n")
	for _, row := range t.rows {
		t.line(b, row, widths)
	}
}

func (t *table) line(b *strings.Builder, cells []string, widths []int) {
	b.WriteString("|")
	for i, cell := range cells {
		pad := strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
		if t.right[i] {
			b.WriteString(" " + pad + cell + " |")
		} else {
			b.WriteString(" " + cell + pad + " |")
		}
	}
	b.WriteString("\n")
}
