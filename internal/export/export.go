// Package export writes workspace reports as CSV, JSON or Markdown.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/wilbur182/linecount/internal/workspace"
)

// Format is an export format name.
type Format string

const (
	CSV      Format = "csv"
	JSON     Format = "json"
	Markdown Format = "markdown"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{CSV, JSON, Markdown}
}

// ParseFormat accepts a format name, case-insensitively, plus "md".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// Delta is the change since an earlier snapshot of the same root.
type Delta struct {
	Since time.Time `json:"since"`
	Files int       `json:"files"`
	Lines int       `json:"lines"`
	Code  int       `json:"code"`
}

// Options adds optional sections to an export.
type Options struct {
	Delta *Delta
}

// Write renders r to w in the given format.
func Write(w io.Writer, format Format, r *workspace.Report, opts Options) error {
	switch format {
	case CSV:
		return writeCSV(w, r)
	case JSON:
		return writeJSON(w, r, opts)
	case Markdown:
		return writeMarkdown(w, r, opts)
	}
	return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}

var csvHeader = []string{"path", "extension", "lines", "code", "comments", "blank", "estimated"}

func writeCSV(w io.Writer, r *workspace.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range r.Files {
		record := []string{
			f.Path,
			f.Extension,
			strconv.Itoa(f.Lines),
			strconv.Itoa(f.Code),
			strconv.Itoa(f.Comments),
			strconv.Itoa(f.Blank),
			strconv.FormatBool(f.Estimated),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type jsonReport struct {
	Root    string                `json:"root"`
	TakenAt time.Time             `json:"takenAt"`
	Summary workspace.Summary     `json:"summary"`
	Delta   *Delta                `json:"delta,omitempty"`
	Files   []workspace.FileEntry `json:"files"`
	Errors  []jsonError           `json:"errors,omitempty"`
}

func writeJSON(w io.Writer, r *workspace.Report, opts Options) error {
	out := jsonReport{
		Root:    r.Root,
		TakenAt: r.TakenAt,
		Summary: r.Summary,
		Delta:   opts.Delta,
		Files:   r.Files,
	}
	if out.Files == nil {
		out.Files = []workspace.FileEntry{}
	}
	for _, e := range r.Errors {
		out.Errors = append(out.Errors, jsonError{Path: e.Path, Error: e.Err.Error()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
