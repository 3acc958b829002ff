package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilbur182/linecount/internal/workspace"
)

func sampleReport() *workspace.Report {
	files := []workspace.FileEntry{
		{Path: "cmd/main.go", Extension: ".go", Language: "Go", Lines: 10, Code: 7, Comments: 2, Blank: 1},
		{Path: "docs/日本語.md", Extension: ".md", Language: "Markdown", Lines: 3, Code: 3},
		{Path: "data/huge.log", Extension: ".log", Lines: 250000, Estimated: true},
	}
	return &workspace.Report{
		Root:    "/src/project",
		TakenAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Files:   files,
		Errors:  []workspace.FileError{{Path: "secret.go", Err: errors.New("permission denied")}},
		Summary: workspace.Summarize(files),
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"csv": CSV, "JSON": JSON, "md": Markdown, " markdown ": Markdown} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("xml"), sampleReport(), Options{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, sampleReport(), Options{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"path", "extension", "lines", "code", "comments", "blank", "estimated"}, records[0])
	assert.Equal(t, []string{"cmd/main.go", ".go", "10", "7", "2", "1", "false"}, records[1])
	assert.Equal(t, []string{"data/huge.log", ".log", "250000", "0", "0", "0", "true"}, records[3])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	delta := &Delta{Since: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Files: 1, Lines: -4}
	require.NoError(t, Write(&buf, JSON, sampleReport(), Options{Delta: delta}))

	var got struct {
		Root    string `json:"root"`
		Summary struct {
			TotalFiles  int `json:"totalFiles"`
			TotalLines  int `json:"totalLines"`
			ByExtension map[string]struct {
				Files int `json:"files"`
				Lines int `json:"lines"`
			} `json:"byExtension"`
		} `json:"summary"`
		Delta  *Delta                `json:"delta"`
		Files  []workspace.FileEntry `json:"files"`
		Errors []map[string]string   `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "/src/project", got.Root)
	assert.Equal(t, 3, got.Summary.TotalFiles)
	assert.Equal(t, 250013, got.Summary.TotalLines)
	assert.Equal(t, 10, got.Summary.ByExtension[".go"].Lines)
	require.NotNil(t, got.Delta)
	assert.Equal(t, -4, got.Delta.Lines)
	require.Len(t, got.Files, 3)
	assert.True(t, got.Files[2].Estimated)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "permission denied", got.Errors[0]["error"])
}

func TestWriteJSONEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	r := &workspace.Report{Root: "/empty", Summary: workspace.Summarize(nil)}
	require.NoError(t, Write(&buf, JSON, r, Options{}))
	assert.Contains(t, buf.String(), `"files": []`)
	assert.NotContains(t, buf.String(), `"delta"`)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	delta := &Delta{Since: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC), Files: 1, Lines: 12, Code: -3}
	require.NoError(t, Write(&buf, Markdown, sampleReport(), Options{Delta: delta}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Line Count Report\n"))
	assert.Contains(t, out, "- Files: 3\n")
	assert.Contains(t, out, "- Lines: 250013 (code 10, comments 2, blank 1)\n")
	assert.Contains(t, out, "- Change since 2026-02-01 09:30: +1 files, +12 lines, -3 code\n")
	assert.Contains(t, out, "- Unreadable: 1\n")
	assert.Contains(t, out, "## By Extension")
	assert.Contains(t, out, "~250000")

	// Every row of a table has the same display width.
	var widths []int
	inFiles := false
	for _, line := range strings.Split(out, "\n") {
		if line == "## Files" {
			inFiles = true
			continue
		}
		if inFiles && strings.HasPrefix(line, "|") {
			widths = append(widths, runewidth.StringWidth(line))
		}
	}
	require.Len(t, widths, 5, "header, separator and three rows")
	for _, w := range widths[1:] {
		assert.Equal(t, widths[0], w)
	}
}

func TestTableAlignment(t *testing.T) {
	var b strings.Builder
	tb := newTable("Name", "N")
	tb.alignRight(1)
	tb.add("a|b", "7")
	tb.add(escapeCell("a|b"), "12")
	tb.render(&b)

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| Name |   N |", lines[0])
	assert.Equal(t, "| ---- | --: |", lines[1])
	assert.True(t, strings.HasSuffix(lines[3], "|  12 |"))
	assert.Contains(t, lines[3], `a\|b`)
}
